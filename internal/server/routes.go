package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
)

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q parameter required")
		return
	}

	opts := graph.QueryOptions{
		MaxEntities: intParam(r, "max_entities"),
		MaxItems:    intParam(r, "max_items"),
		DecayDays:   s.traverse.DecayDays,
	}

	result, err := s.engine.Query(r.Context(), query, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q parameter required")
		return
	}

	maxTokens := intParam(r, "max_tokens")
	bundle := s.engine.ContextBundle(r.Context(), query, maxTokens)

	writeJSON(w, http.StatusOK, map[string]string{
		"query":   query,
		"context": bundle,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleBridges(w http.ResponseWriter, r *http.Request) {
	minDomains := intParam(r, "min_domains")
	bridges, err := s.engine.BridgingEntities(r.Context(), minDomains)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(bridges),
		"bridges": bridges,
	})
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to parameters required")
		return
	}

	maxDepth := graph.DefaultPathDepth
	if d := intParam(r, "max_depth"); d > 0 {
		maxDepth = d
	}

	path, err := s.engine.ShortestPath(r.Context(), from, to, maxDepth)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"from":  from,
		"to":    to,
		"found": path != nil,
		"path":  path,
	})
}

func (s *Server) handleCooccurrences(w http.ResponseWriter, r *http.Request) {
	min := intParam(r, "min")
	pairs, err := s.engine.FrequentCooccurrences(r.Context(), min)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":         len(pairs),
		"cooccurrences": pairs,
	})
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	entityType := graph.EntityType(r.URL.Query().Get("type"))
	if entityType != "" && !entityType.Valid() {
		writeError(w, http.StatusBadRequest, "unknown entity type "+string(entityType))
		return
	}

	days := intParam(r, "days")
	patterns, err := s.engine.TemporalPatterns(r.Context(), entityType, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(patterns),
		"patterns": patterns,
	})
}

func (s *Server) handleNeighborhood(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "entityID")

	opts := s.traverse
	if d := intParam(r, "max_depth"); d > 0 {
		opts.MaxDepth = d
	}
	if n := intParam(r, "max_nodes"); n > 0 {
		opts.MaxNodes = n
	}

	hood, err := s.engine.Neighborhood(r.Context(), entityID, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if hood == nil {
		writeError(w, http.StatusNotFound, "entity not found")
		return
	}
	writeJSON(w, http.StatusOK, hood)
}

func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "entityID")

	conn, err := s.engine.CrossDomainConnections(r.Context(), entityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if conn == nil {
		writeError(w, http.StatusNotFound, "entity not found")
		return
	}
	writeJSON(w, http.StatusOK, conn)
}

func intParam(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
