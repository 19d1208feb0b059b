package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestServeReturnsStartupErrors(t *testing.T) {
	// A regular file where the data directory should be.
	dataDir := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(dataDir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GCP_PROJECT_ID", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATA_DIR", dataDir)

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"serve", "--config", ""})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected serve to return the startup error")
	}
}
