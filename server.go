package main

import (
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bodul/puzzlepack/puzzle"
)

//go:embed frontend
var frontendFS embed.FS

const maxBodySize = 1 << 20 // 1 Mo

// Server is the main HTTP server.
type Server struct {
	router     chi.Router
	store      *Store
	analyzer   Analyzer
	sse        *Broadcaster
	cfg        Config
	generateRL *rateLimiter
	moveRL     *rateLimiter
}

// NewServer creates a configured HTTP server. A nil analyzer disables
// activities built from article text.
func NewServer(store *Store, analyzer Analyzer, cfg Config) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		store:      store,
		analyzer:   analyzer,
		sse:        NewBroadcaster(),
		cfg:        cfg,
		generateRL: newRateLimiter(cfg.Server.GenerateRate, time.Minute),
		moveRL:     newRateLimiter(cfg.Server.MoveRate, time.Second),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RealIP, middleware.Recoverer, securityHeaders)

	r.Route("/api", func(r chi.Router) {
		// Activities
		r.Post("/activities", s.handleCreateActivity)
		r.Get("/activities", s.handleListActivities)
		r.Get("/activities/{id}", s.handleGetActivity)
		r.Delete("/activities/{id}", s.handleDeleteActivity)
		r.Get("/activities/{id}/print", s.handlePrintActivity)
		r.Get("/activities/{id}/games", s.handleListActivityGames)

		// Single engine, nothing stored
		r.Post("/puzzles/{kind}", s.handleGeneratePuzzle)

		// Games
		r.Post("/games", s.handleCreateGame)
		r.Get("/games/{id}", s.handleGetGame)
		r.Post("/games/{id}/join", s.handleJoinGame)
		r.Post("/games/{id}/move", s.handleMove)
		r.Post("/games/{id}/check", s.handleCheck)
		r.Get("/games/{id}/events", s.handleGameEvents)
	})

	// Frontend static files
	frontendDir, _ := fs.Sub(frontendFS, "frontend")
	r.Get("/game/{id}", s.handleGamePage)
	r.Method(http.MethodGet, "/*", http.FileServer(http.FS(frontendDir)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops the background work of the server and ends SSE streams.
func (s *Server) Close() {
	s.generateRL.close()
	s.moveRL.close()
	s.sse.Close()
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// --- Activity handlers ---

type createActivityRequest struct {
	Title      string                  `json:"title"`
	Article    string                  `json:"article"`
	Vocabulary []puzzle.VocabularyItem `json:"vocabulary"`
	GradeLevel string                  `json:"grade_level"`
	WordCount  int                     `json:"word_count"`
	Kinds      []PuzzleKind            `json:"kinds"`
	Seed       uint64                  `json:"seed"`
}

// POST /api/activities: analyze an article (or take a word list) and build the puzzles.
func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	if !s.generateRL.allow(clientIP(r)) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	var req createActivityRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Requête invalide", http.StatusBadRequest)
		return
	}

	grade, ok := s.gradeLevel(w, req.GradeLevel)
	if !ok {
		return
	}
	kinds, err := uniqueKinds(req.Kinds)
	if err != nil {
		jsonError(w, "Type de puzzle inconnu", http.StatusBadRequest)
		return
	}

	areq := ActivityRequest{
		Title:      strings.TrimSpace(req.Title),
		GradeLevel: grade,
		Kinds:      kinds,
		Seed:       req.Seed,
	}

	switch {
	case strings.TrimSpace(req.Article) != "":
		if s.analyzer == nil {
			jsonError(w, "Analyse d'article non configurée", http.StatusServiceUnavailable)
			return
		}
		wordCount := req.WordCount
		if wordCount == 0 {
			wordCount = s.cfg.Puzzles.WordCount
		}
		if wordCount < minWordCount || wordCount > maxWordCount {
			jsonError(w, "Nombre de mots invalide", http.StatusBadRequest)
			return
		}

		analysis, err := s.analyzer.AnalyzeArticle(r.Context(), req.Article, AnalysisOptions{GradeLevel: grade, WordCount: wordCount})
		if errors.Is(err, errUnsuitableContent) {
			jsonError(w, "Ce texte ne ressemble pas à un article : fournissez un récit ou un reportage", http.StatusUnprocessableEntity)
			return
		}
		if err != nil {
			log.Printf("Gemini analyze error: %v", err)
			jsonError(w, "Erreur lors de l'analyse de l'article", http.StatusBadGateway)
			return
		}
		if areq.Title == "" {
			areq.Title = analysis.Title
		}
		areq.Summary = analysis.Summary
		areq.SearchQuery = analysis.SearchQuery
		areq.Vocabulary = analysis.Vocabulary

	default:
		areq.Vocabulary = puzzle.NormalizeVocabulary(req.Vocabulary)
		if len(areq.Vocabulary) == 0 {
			jsonError(w, "Champ 'article' ou 'vocabulary' requis", http.StatusBadRequest)
			return
		}
	}
	if areq.Title == "" {
		areq.Title = "Activité sans titre"
	}

	activity, err := BuildActivity(r.Context(), areq)
	if err != nil {
		log.Printf("Build activity error: %v", err)
		jsonError(w, "Erreur lors de la création des puzzles", http.StatusInternalServerError)
		return
	}
	if err := s.store.SaveActivity(activity); err != nil {
		log.Printf("Save activity error: %v", err)
		jsonError(w, "Erreur lors de l'enregistrement de l'activité", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, activity)
}

// GET /api/activities: history, most recent first.
func (s *Server) handleListActivities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListActivities())
}

// GET /api/activities/{id}: a single activity.
func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	activity := s.store.GetActivity(chi.URLParam(r, "id"))
	if activity == nil {
		jsonError(w, "Activité introuvable", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

// DELETE /api/activities/{id}: remove from history.
func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteActivity(chi.URLParam(r, "id"))
	if errors.Is(err, errActivityNotFound) {
		jsonError(w, "Activité introuvable", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("Delete activity error: %v", err)
		jsonError(w, "Erreur lors de la suppression", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/activities/{id}/print: printable text, answers with ?solutions=1.
func (s *Server) handlePrintActivity(w http.ResponseWriter, r *http.Request) {
	activity := s.store.GetActivity(chi.URLParam(r, "id"))
	if activity == nil {
		jsonError(w, "Activité introuvable", http.StatusNotFound)
		return
	}
	solutions := r.URL.Query().Get("solutions") == "1"

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := RenderText(w, activity, solutions); err != nil {
		log.Printf("Render activity %s: %v", activity.ID, err)
	}
}

// GET /api/activities/{id}/games: sessions played on an activity.
func (s *Server) handleListActivityGames(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.store.GetActivity(id) == nil {
		jsonError(w, "Activité introuvable", http.StatusNotFound)
		return
	}
	views := []gameView{}
	for _, g := range s.store.ListGames(id) {
		views = append(views, newGameView(g))
	}
	writeJSON(w, http.StatusOK, views)
}

// POST /api/puzzles/{kind}: run one engine on a word list.
func (s *Server) handleGeneratePuzzle(w http.ResponseWriter, r *http.Request) {
	kind, err := parsePuzzleKind(chi.URLParam(r, "kind"))
	if err != nil {
		jsonError(w, "Type de puzzle inconnu", http.StatusNotFound)
		return
	}

	var req struct {
		Vocabulary []puzzle.VocabularyItem `json:"vocabulary"`
		GradeLevel string                  `json:"grade_level"`
		Seed       uint64                  `json:"seed"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Requête invalide", http.StatusBadRequest)
		return
	}
	grade, ok := s.gradeLevel(w, req.GradeLevel)
	if !ok {
		return
	}

	activity, err := BuildActivity(r.Context(), ActivityRequest{
		GradeLevel: grade,
		Vocabulary: puzzle.NormalizeVocabulary(req.Vocabulary),
		Kinds:      []PuzzleKind{kind},
		Seed:       req.Seed,
	})
	if err != nil {
		jsonError(w, "Erreur lors de la création du puzzle", http.StatusInternalServerError)
		return
	}

	switch kind {
	case KindCrossword:
		writeJSON(w, http.StatusOK, activity.Crossword)
	case KindWordSearch:
		writeJSON(w, http.StatusOK, activity.WordSearch)
	case KindScramble:
		writeJSON(w, http.StatusOK, activity.Scramble)
	}
}

// --- Game handlers ---

type gameView struct {
	ID         string          `json:"id"`
	ActivityID string          `json:"activity_id"`
	Players    []Player        `json:"players"`
	State      [][]string      `json:"state"`
	Layout     CrosswordLayout `json:"layout"`
	CreatedAt  time.Time       `json:"created_at"`
}

func newGameView(g *GameSession) gameView {
	return gameView{
		ID:         g.ID,
		ActivityID: g.ActivityID,
		Players:    g.PlayerList(),
		State:      g.GetState(),
		Layout:     g.Layout(),
		CreatedAt:  g.CreatedAt,
	}
}

// POST /api/games: start a fill-in session on the crossword of an activity.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActivityID string `json:"activity_id"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ActivityID == "" {
		jsonError(w, "Champ 'activity_id' requis", http.StatusBadRequest)
		return
	}

	game, err := s.store.CreateGame(req.ActivityID)
	switch {
	case errors.Is(err, errActivityNotFound):
		jsonError(w, "Activité introuvable", http.StatusNotFound)
		return
	case errors.Is(err, errNoCrossword):
		jsonError(w, "Cette activité n'a pas de mots croisés", http.StatusConflict)
		return
	case err != nil:
		jsonError(w, "Erreur lors de la création de la partie", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, newGameView(game))
}

// GET /api/games/{id}: current game state with the blank layout.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(chi.URLParam(r, "id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newGameView(game))
}

// POST /api/games/{id}/join: join a game with a pseudo.
func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(chi.URLParam(r, "id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}

	var req struct {
		Pseudo string `json:"pseudo"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pseudo == "" {
		jsonError(w, "Champ 'pseudo' requis", http.StatusBadRequest)
		return
	}

	pseudo := sanitizePseudo(req.Pseudo)
	if pseudo == "" {
		jsonError(w, "Pseudo invalide", http.StatusBadRequest)
		return
	}

	player := game.AddPlayer(pseudo)
	s.publish(game.ID, GameEvent{Type: "player_joined", Pseudo: player.Pseudo, Color: player.Color})

	writeJSON(w, http.StatusOK, player)
}

// POST /api/games/{id}/move: place or erase a letter.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if !s.moveRL.allow(clientIP(r)) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	game := s.store.GetGame(chi.URLParam(r, "id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}

	var req struct {
		Pseudo string `json:"pseudo"`
		Row    int    `json:"row"`
		Col    int    `json:"col"`
		Value  string `json:"value"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Requête invalide", http.StatusBadRequest)
		return
	}

	// Value must be empty (erase) or a single uppercase letter.
	value := strings.ToUpper(strings.TrimSpace(req.Value))
	if value != "" && (utf8.RuneCountInString(value) != 1 || value < "A" || value > "Z") {
		jsonError(w, "Valeur invalide : une lettre A-Z ou vide", http.StatusBadRequest)
		return
	}

	solved, err := game.Play(req.Row, req.Col, value)
	switch {
	case errors.Is(err, errOutOfBounds):
		jsonError(w, "Position hors limites", http.StatusBadRequest)
		return
	case errors.Is(err, errNotLetterCell):
		jsonError(w, "Case noire", http.StatusBadRequest)
		return
	}

	s.publish(game.ID, GameEvent{
		Type:   "cell_update",
		Row:    req.Row,
		Col:    req.Col,
		Value:  value,
		Pseudo: sanitizePseudo(req.Pseudo),
	})
	if solved {
		s.publish(game.ID, GameEvent{Type: "solved", Pseudo: sanitizePseudo(req.Pseudo)})
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/games/{id}/check: compare the grid with the answers.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(chi.URLParam(r, "id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, game.Check())
}

// GET /api/games/{id}/events: SSE stream.
func (s *Server) handleGameEvents(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(chi.URLParam(r, "id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}

	playerPseudo := sanitizePseudo(r.URL.Query().Get("pseudo"))
	initial := &GameEvent{Type: "game_state", State: game.GetState(), Players: game.PlayerList()}

	s.sse.ServeSSE(w, r, game.ID, initial, func() {
		// On disconnect: broadcast player_left if pseudo was provided.
		if playerPseudo != "" {
			game.RemovePlayer(playerPseudo)
			s.publish(game.ID, GameEvent{Type: "player_left", Pseudo: playerPseudo})
		}
	})
}

// --- Frontend page handlers ---

// GET /game/{id}: serve the game page.
func (s *Server) handleGamePage(w http.ResponseWriter, _ *http.Request) {
	data, _ := frontendFS.ReadFile("frontend/game.html")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// --- Helpers ---

func (s *Server) publish(sessionID string, evt GameEvent) {
	if err := s.sse.Publish(sessionID, evt); err != nil {
		log.Printf("SSE publish error: %v", err)
	}
}

// gradeLevel resolves the grade of a request, writing a 400 when invalid.
func (s *Server) gradeLevel(w http.ResponseWriter, raw string) (puzzle.GradeLevel, bool) {
	if strings.TrimSpace(raw) == "" {
		return s.cfg.DefaultGrade(), true
	}
	grade, err := puzzle.ParseGradeLevel(raw)
	if err != nil {
		jsonError(w, "Niveau scolaire invalide (3, 6, 9 ou 12)", http.StatusBadRequest)
		return "", false
	}
	return grade, true
}

// clientIP is the rate limiting key: the host part of RemoteAddr, which
// middleware.RealIP may already have replaced by a bare forwarded address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Encode response: %v", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizePseudo(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > 20 {
		s = string([]rune(s)[:20])
	}
	return s
}
