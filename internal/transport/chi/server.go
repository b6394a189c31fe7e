// Package chi exposes the search pipeline over HTTP: search, listing
// ingest and eviction, health, and Prometheus metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/domek/internal/domain"
	"github.com/kailas-cloud/domek/internal/domain/listing"
	"github.com/kailas-cloud/domek/internal/domain/search"
	healthuc "github.com/kailas-cloud/domek/internal/usecase/health"
)

const maxQueryLen = 2000

// searcher runs the hybrid pipeline.
type searcher interface {
	Search(ctx context.Context, query string, topK int) ([]search.Result, error)
}

// ingester stores and evicts listings.
type ingester interface {
	Index(ctx context.Context, l listing.Listing) error
	Delete(ctx context.Context, p listing.Partition, id string) error
}

// healthService reports component health.
type healthService interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API server.
type Server struct {
	search        searcher
	indexer       ingester
	health        healthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search searcher, indexer ingester, health healthService, logger *zap.Logger) *Server {
	s := &Server{
		search:  search,
		indexer: indexer,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrListingNotFound, http.StatusNotFound, "listing_not_found"),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "store_unavailable"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding_provider_error"),
	}
	return s
}

// Routes mounts all handlers on a router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Post("/listings", s.IngestListing)
		r.Delete("/listings/{partition}/{id}", s.DeleteListing)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if len(req.Query) > maxQueryLen {
		writeError(w, http.StatusBadRequest, "validation_failed", "Query is too long")
		return
	}
	if req.TopK < 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "top_k must not be negative")
		return
	}

	results, err := s.search.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = resultToDTO(results[i])
	}

	writeJSON(w, http.StatusOK, SearchResponse{Items: items, Total: len(items)})
}

// IngestListing handles POST /api/v1/listings.
func (s *Server) IngestListing(w http.ResponseWriter, r *http.Request) {
	var dto ListingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	l, err := listingFromDTO(dto)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if l.ID == "" && l.Link == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "listing needs an id or a source link")
		return
	}
	if l.ID == "" {
		l.ID = listing.IDFromLink(l.Link)
	}

	if err := s.indexer.Index(r.Context(), l); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, IngestResponse{ID: l.ID, Partition: string(l.Partition)})
}

// DeleteListing handles DELETE /api/v1/listings/{partition}/{id}.
func (s *Server) DeleteListing(w http.ResponseWriter, r *http.Request) {
	p := listing.Partition(chi.URLParam(r, "partition"))
	if p != listing.PartitionRent && p != listing.PartitionSale {
		writeError(w, http.StatusBadRequest, "validation_failed", "partition must be rent or sale")
		return
	}
	id := chi.URLParam(r, "id")

	if err := s.indexer.Delete(r.Context(), p, id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrListingNotFound,
		domain.ErrStoreUnavailable,
		domain.ErrEmbeddingProviderError,
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
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
