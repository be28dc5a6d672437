// Package chi is the HTTP API layer.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/domain"
	healthuc "github.com/kailas-cloud/talentdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/talentdex/internal/usecase/search"
)

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUpstreamDown     = "dependency_unavailable"
	codeInternalError    = "internal_error"
)

// Searcher runs the search pipeline.
type Searcher interface {
	Search(ctx context.Context, req searchuc.Request) (domain.SearchResult, error)
}

// CacheAdmin exposes the cache maintenance operations.
type CacheAdmin interface {
	InvalidateCache(ctx context.Context, pattern string) (int64, error)
	CacheStats(ctx context.Context) (domain.CacheStats, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API server.
type Server struct {
	search        Searcher
	cache         CacheAdmin
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, cache CacheAdmin, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		cache:  cache,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusServiceUnavailable, codeUpstreamDown),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeUpstreamDown),
		sentinelHandler(domain.ErrRerankUnavailable, http.StatusBadGateway, codeUpstreamDown),
		sentinelHandler(domain.ErrCacheUnavailable, http.StatusServiceUnavailable, codeUpstreamDown),
	}
	return s
}

// Routes mounts all API endpoints on a fresh router. Middleware is applied
// by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.SearchCandidates)
		r.Post("/cache/invalidate", s.InvalidateCache)
		r.Get("/cache/stats", s.CacheStats)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	return r
}

type searchFilters struct {
	Location      string `json:"location"`
	MinExperience *int   `json:"min_experience"`
}

type searchRequest struct {
	Query   string         `json:"query"`
	Filters *searchFilters `json:"filters"`
	TopK    *int           `json:"top_k"`
}

// SearchCandidates handles POST /api/v1/search.
func (s *Server) SearchCandidates(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ucReq := searchuc.Request{Query: req.Query}

	if req.Filters != nil {
		if req.Filters.MinExperience != nil && *req.Filters.MinExperience < 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "min_experience must not be negative")
			return
		}
		ucReq.Filters = domain.FilterSet{
			Location:      req.Filters.Location,
			MinExperience: req.Filters.MinExperience,
		}
	}

	if req.TopK != nil {
		if *req.TopK <= 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "top_k must be at least 1")
			return
		}
		ucReq.TopK = *req.TopK
	}

	if req.Query == "" && ucReq.Filters.IsEmpty() {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query or at least one filter is required")
		return
	}

	result, err := s.search.Search(r.Context(), ucReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if result.Results == nil {
		result.Results = []domain.CandidateRecord{}
	}
	writeJSON(w, http.StatusOK, result)
}

type invalidateRequest struct {
	Pattern string `json:"pattern"`
}

type invalidateResponse struct {
	Deleted int64 `json:"deleted"`
}

// InvalidateCache handles POST /api/v1/cache/invalidate.
// An empty or missing body clears the whole search namespace.
func (s *Server) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	var req invalidateRequest
	// An empty body is fine, malformed JSON is not.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	deleted, err := s.cache.InvalidateCache(r.Context(), req.Pattern)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, invalidateResponse{Deleted: deleted})
}

// CacheStats handles GET /api/v1/cache/stats.
func (s *Server) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.cache.CacheStats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidFilter,
		domain.ErrEmbeddingUnavailable,
		domain.ErrStoreUnavailable,
		domain.ErrRerankUnavailable,
		domain.ErrCacheUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
