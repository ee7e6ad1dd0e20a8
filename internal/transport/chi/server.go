// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chi exposes the federated search over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-federator/internal/logger"
	"github.com/pdiddy/scholar-federator/internal/metrics"
	"github.com/pdiddy/scholar-federator/internal/search"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

// maxBodyBytes caps the POST /api/search request body.
const maxBodyBytes = 64 << 10

var now = time.Now

// Searcher is the federated search the server fronts.
type Searcher interface {
	Search(ctx context.Context, query string, opts search.Options) (types.AggregateResult, error)
	Providers() []string
}

// Server serves the search API.
type Server struct {
	search Searcher
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(s Searcher, l *zap.Logger) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	return &Server{search: s, logger: l}
}

// Router returns the routes with the standard middleware stack applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.PostSearch)
		r.Get("/search", s.GetSearch)
	})
	r.Get("/healthz", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// searchRequest is the POST /api/search body. Absent switches take their
// defaults, so they are pointers.
type searchRequest struct {
	Query          string `json:"query"`
	IncludeWeb     *bool  `json:"includeWeb"`
	TrustedOnly    *bool  `json:"trustedOnly"`
	LimitWeb       *int   `json:"limitWeb"`
	LimitScholarly *int   `json:"limitScholarly"`
}

// searchResponse echoes the query alongside the aggregate.
type searchResponse struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
	Total     int       `json:"total"`
	types.AggregateResult
}

type errorResponse struct {
	Error string `json:"error"`
}

// PostSearch handles POST /api/search.
func (s *Server) PostSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	opts := search.DefaultOptions()
	if req.IncludeWeb != nil {
		opts.IncludeWeb = *req.IncludeWeb
	}
	if req.TrustedOnly != nil {
		opts.TrustedOnly = *req.TrustedOnly
	}
	if req.LimitWeb != nil {
		opts.LimitWeb = *req.LimitWeb
	}
	if req.LimitScholarly != nil {
		opts.LimitScholarly = *req.LimitScholarly
	}
	if opts.LimitWeb < 0 || opts.LimitScholarly < 0 {
		writeError(w, http.StatusBadRequest, "limits must not be negative")
		return
	}
	s.serveSearch(w, r, req.Query, opts)
}

// GetSearch handles GET /api/search?q=&includeWeb=&trustedOnly=&limit=&webLimit=.
func (s *Server) GetSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := search.DefaultOptions()

	var err error
	if opts.IncludeWeb, err = boolParam(q.Get("includeWeb"), opts.IncludeWeb); err != nil {
		writeError(w, http.StatusBadRequest, "includeWeb: "+err.Error())
		return
	}
	if opts.TrustedOnly, err = boolParam(q.Get("trustedOnly"), opts.TrustedOnly); err != nil {
		writeError(w, http.StatusBadRequest, "trustedOnly: "+err.Error())
		return
	}
	if opts.LimitScholarly, err = intParam(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, "limit: "+err.Error())
		return
	}
	if opts.LimitWeb, err = intParam(q.Get("webLimit")); err != nil {
		writeError(w, http.StatusBadRequest, "webLimit: "+err.Error())
		return
	}
	s.serveSearch(w, r, q.Get("q"), opts)
}

func (s *Server) serveSearch(w http.ResponseWriter, r *http.Request, query string, opts search.Options) {
	ctx := logger.With(r.Context(), zap.String("query", strings.TrimSpace(query)))
	res, err := s.search.Search(ctx, query, opts)
	if err != nil {
		if errors.Is(err, search.ErrInvalidQuery) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.FromContext(ctx).Error("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if res.Resources == nil {
		res.Resources = []types.Resource{}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Query:           strings.TrimSpace(query),
		Timestamp:       now().UTC(),
		Total:           len(res.Resources),
		AggregateResult: res,
	})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"providers": s.search.Providers(),
	})
}

func boolParam(v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	return strconv.ParseBool(v)
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
