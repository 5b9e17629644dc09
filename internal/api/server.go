// Package api provides REST API endpoints for entity extraction, question
// answering, and flight query parsing.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"travel_parser/internal/extractor"
	"travel_parser/internal/frames"
	"travel_parser/internal/qa"
	"travel_parser/internal/query"
	"travel_parser/internal/store"
	"travel_parser/internal/travel"
)

// Server provides REST API access to the extraction engine and the
// session store of results.
type Server struct {
	store       *store.Store
	port        int
	workers     int
	authEnabled bool
	apiKeys     map[string]bool // Simple API key auth (when enabled).
}

// Config holds configuration for the extraction API server.
type Config struct {
	Port        int
	Workers     int // Frame extraction concurrency.
	AuthEnabled bool
	APIKeys     []string // List of valid API keys.
}

// NewServer creates a new extraction API server.
func NewServer(st *store.Store, cfg Config) *Server {
	keys := make(map[string]bool)
	for _, k := range cfg.APIKeys {
		if k != "" {
			keys[k] = true
		}
	}

	return &Server{
		store:       st,
		port:        cfg.Port,
		workers:     cfg.Workers,
		authEnabled: cfg.AuthEnabled,
		apiKeys:     keys,
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	r := chi.NewRouter()

	// Standard middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS for browser access.
	r.Use(corsMiddleware)

	// Optional authentication.
	if s.authEnabled {
		r.Use(s.authMiddleware)
	}

	s.mount(r)

	addr := ":" + itoa(s.port)
	log.Printf("Extraction API starting at http://localhost%s", addr)
	if s.authEnabled {
		log.Printf("Authentication: ENABLED (API key required)")
	} else {
		log.Printf("Authentication: DISABLED (open access)")
	}

	return http.ListenAndServe(addr, r)
}

// Router returns the configured chi router for embedding in other servers
// and for tests.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	// Optional authentication.
	if s.authEnabled {
		r.Use(s.authMiddleware)
	}

	s.mount(r)
	return r
}

// mount registers the API routes.
func (s *Server) mount(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)
		r.Post("/ask", s.handleAsk)
		r.Post("/parse-flight-query", s.handleParseFlightQuery)
		r.Get("/jobs", s.handleListJobs)
		r.Get("/jobs/{file_id}", s.handleGetJob)
	})
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authMiddleware validates API key authentication.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check X-API-Key header first.
		apiKey := r.Header.Get("X-API-Key")

		// Fall back to Authorization: Bearer <key>.
		if apiKey == "" {
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				apiKey = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		// Fall back to query parameter (for simple testing).
		if apiKey == "" {
			apiKey = r.URL.Query().Get("api_key")
		}

		if apiKey == "" {
			writeError(w, http.StatusUnauthorized, "API key required")
			return
		}

		if !s.apiKeys[apiKey] {
			writeError(w, http.StatusForbidden, "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "OCR & NLP Processing System",
		"endpoints": []string{
			"/api/v1/extract",
			"/api/v1/ask",
			"/api/v1/parse-flight-query",
			"/api/v1/jobs",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// extractRequest is the request body for extraction. Text yields a static
// result; frames yield a dynamic one. Frames win when both are present.
type extractRequest struct {
	Filename string         `json:"filename"`
	Text     string         `json:"text"`
	Frames   []travel.Frame `json:"frames"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	res := &travel.ExtractionResult{
		FileID:    uuid.NewString(),
		Filename:  req.Filename,
		Timestamp: time.Now().UTC(),
	}

	switch {
	case len(req.Frames) > 0:
		res.Kind = travel.KindDynamic
		results := frames.ProcessBatch(req.Frames, s.workers)
		merged := frames.Merge(results)
		res.FramesProcessed = len(results)
		res.FrameResults = results
		res.MergedEntities = &merged
	case req.Text != "":
		res.Kind = travel.KindStatic
		rec := extractor.Extract(req.Text)
		res.Entities = &rec
	default:
		writeError(w, http.StatusBadRequest, "No text or frames provided")
		return
	}

	s.store.Save(res)
	writeJSON(w, http.StatusOK, res)
}

// askRequest is the request body for question answering.
type askRequest struct {
	FileID   string `json:"file_id"`
	Question string `json:"question"`
}

// askResponse echoes the question alongside the answer and its provenance.
type askResponse struct {
	FileID   string `json:"file_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Source   string `json:"source"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "No question provided")
		return
	}

	res, ok := s.store.Get(req.FileID)
	if !ok {
		writeError(w, http.StatusNotFound, "File ID not found")
		return
	}

	ans := qa.Answer(res.Record(), req.Question)
	writeJSON(w, http.StatusOK, askResponse{
		FileID:   req.FileID,
		Question: req.Question,
		Answer:   ans.Answer,
		Source:   ans.Source,
	})
}

// queryRequest is the request body for flight query parsing.
type queryRequest struct {
	Query       string `json:"query"`
	CurrentDate string `json:"current_date"` // YYYY-MM-DD; defaults to today (UTC).
}

func (s *Server) handleParseFlightQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "No query provided")
		return
	}

	current := time.Now().UTC()
	if req.CurrentDate != "" {
		parsed, err := time.Parse("2006-01-02", req.CurrentDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid current_date format (use YYYY-MM-DD)")
			return
		}
		current = parsed
	}

	writeJSON(w, http.StatusOK, query.Parse(req.Query, current))
}

// jobSummary is one row of the jobs listing.
type jobSummary struct {
	FileID    string    `json:"file_id"`
	Kind      string    `json:"type"`
	Filename  string    `json:"filename,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	jobs := s.store.List(limit)
	summaries := make([]jobSummary, 0, len(jobs))
	for _, res := range jobs {
		summaries = append(summaries, jobSummary{
			FileID:    res.FileID,
			Kind:      res.Kind,
			Filename:  res.Filename,
			Timestamp: res.Timestamp,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  summaries,
		"count": len(summaries),
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	res, ok := s.store.Get(chi.URLParam(r, "file_id"))
	if !ok {
		writeError(w, http.StatusNotFound, "File ID not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Helper functions.

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
