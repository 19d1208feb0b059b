package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the web server.

Environment:
  PORT             listen port (default 8080)
  GCP_PROJECT_ID   Vertex AI project for article analysis
  GEMINI_API_KEY   Gemini API key, used when no project is set
  DATA_DIR         keep activities as JSON files in this directory`,
		RunE: runServe,
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var analyzer Analyzer
	gemini, err := NewGeminiClient(ctx, cfg.Gemini)
	switch {
	case errors.Is(err, errGeminiNotConfigured):
		log.Println("Ni GCP_PROJECT_ID ni GEMINI_API_KEY définis : analyse d'article désactivée")
	case err != nil:
		return fmt.Errorf("init gemini: %w", err)
	default:
		defer gemini.Close()
		analyzer = gemini
		log.Printf("Client Gemini initialisé (modèle: %s)", gemini.modelName)
	}

	store := NewStore()
	if cfg.Store.Dir != "" {
		if store, err = OpenStore(cfg.Store.Dir); err != nil {
			return err
		}
		log.Printf("Activités enregistrées dans %s", cfg.Store.Dir)
	}

	srv := NewServer(store, analyzer, cfg)
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           otelhttp.NewHandler(srv, "puzzlepack"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Serveur démarré sur http://localhost:%s", cfg.Server.Port)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Arrêt du serveur...")
	// SSE streams never end on their own: close them before waiting.
	srv.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
