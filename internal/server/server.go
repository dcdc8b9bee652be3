// Package server exposes the knowledge graph over a local HTTP API.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
	"github.com/Johnsonbros/Zeke-sub009/internal/store"
)

// Server is the zeke HTTP API server.
type Server struct {
	db       *store.DB
	engine   *graph.Engine
	router   chi.Router
	version  string
	started  time.Time
	traverse graph.TraverseOptions // limits used when a request sets none
}

// New creates a new Server with the given database, engine, and version string.
func New(db *store.DB, engine *graph.Engine, version string) *Server {
	s := &Server{
		db:       db,
		engine:   engine,
		version:  version,
		started:  time.Now(),
		traverse: graph.DefaultTraverseOptions(),
	}
	s.routes()
	return s
}

// SetTraverseDefaults overrides the traversal limits applied when a request
// does not carry its own. Non-positive fields keep the standard limits.
func (s *Server) SetTraverseDefaults(opts graph.TraverseOptions) {
	def := graph.DefaultTraverseOptions()
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = def.MaxDepth
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = def.MaxNodes
	}
	if opts.MinScore <= 0 {
		opts.MinScore = def.MinScore
	}
	if opts.DecayDays <= 0 {
		opts.DecayDays = def.DecayDays
	}
	s.traverse = opts
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/graph", func(r chi.Router) {
			r.Get("/query", s.handleQuery)
			r.Get("/context", s.handleContext)
			r.Get("/stats", s.handleStats)
			r.Get("/bridges", s.handleBridges)
			r.Get("/path", s.handlePath)
			r.Get("/cooccurrences", s.handleCooccurrences)
			r.Get("/patterns", s.handlePatterns)
			r.Get("/neighborhood/{entityID}", s.handleNeighborhood)
		})

		r.Get("/entities/{entityID}/connections", s.handleConnections)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
