package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/domek/internal/config"
	"github.com/kailas-cloud/domek/internal/db"
	dbRedis "github.com/kailas-cloud/domek/internal/db/redis"
	"github.com/kailas-cloud/domek/internal/domain"
	logpkg "github.com/kailas-cloud/domek/internal/logger"
	"github.com/kailas-cloud/domek/internal/metrics"
	"github.com/kailas-cloud/domek/internal/repository/embcache"
	embeddingsrepo "github.com/kailas-cloud/domek/internal/repository/embeddings"
	listingsrepo "github.com/kailas-cloud/domek/internal/repository/listings"
	chiTransport "github.com/kailas-cloud/domek/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/domek/internal/transport/openai"
	extractuc "github.com/kailas-cloud/domek/internal/usecase/extract"
	"github.com/kailas-cloud/domek/internal/usecase/filterengine"
	healthuc "github.com/kailas-cloud/domek/internal/usecase/health"
	"github.com/kailas-cloud/domek/internal/usecase/hybrid"
	"github.com/kailas-cloud/domek/internal/usecase/indexer"
	"github.com/kailas-cloud/domek/internal/usecase/keyword"
	"github.com/kailas-cloud/domek/internal/usecase/rerank"
	"github.com/kailas-cloud/domek/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting domek API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Bool("embedding_enabled", cfg.Embedding.APIKey != ""),
		zap.Bool("extraction_enabled", cfg.Extraction.APIKey != ""),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	embedder := buildEmbedder(cfg, store, logger)

	// Repositories
	listings := listingsrepo.New(store)
	vectors := embeddingsrepo.New(store)

	// Extraction: LLM capability with deterministic rules behind it.
	var capability extractuc.Extractor
	if cfg.Extraction.APIKey != "" {
		capability = openaiTransport.NewExtractor(&openaiTransport.ExtractorConfig{
			APIKey:  cfg.Extraction.APIKey,
			BaseURL: cfg.Extraction.BaseURL,
			Model:   cfg.Extraction.Model,
			Logger:  logger,
		})
	}
	extractSvc := extractuc.New(capability,
		time.Duration(cfg.Extraction.TimeoutSec)*time.Second, logger)

	filterSvc := filterengine.New(listings, cfg.Search.CandidateLimit, logger)

	var reranker *rerank.Service
	if embedder != nil {
		reranker, err = rerank.New(vectors, embedder, cfg.Search.RerankWorkers, logger)
		if err != nil {
			logger.Fatal("Failed to create reranker", zap.Error(err))
		}
		defer reranker.Close()
	}

	// hybrid.New takes the reranker through an interface; a typed nil
	// pointer must not masquerade as a live strategy.
	searchSvc := newSearchService(extractSvc, filterSvc, reranker, cfg, logger)

	indexSvc := indexer.New(listings, vectors, embedder, logger)
	healthSvc := healthuc.New(store, newEmbeddingHealthChecker(embedder))

	server := chiTransport.NewServer(searchSvc, indexSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func newSearchService(
	extractSvc *extractuc.Service,
	filterSvc *filterengine.Service,
	reranker *rerank.Service,
	cfg config.Config,
	logger *zap.Logger,
) *hybrid.Service {
	if reranker == nil {
		return hybrid.New(extractSvc, filterSvc, nil, keyword.New(), cfg.Search.DefaultTopK, logger)
	}
	return hybrid.New(extractSvc, filterSvc, reranker, keyword.New(), cfg.Search.DefaultTopK, logger)
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached. Returns nil
// when no embedding provider is configured; the pipeline then runs on
// keyword scoring alone.
func buildEmbedder(cfg config.Config, store db.Store, logger *zap.Logger) domain.Embedder {
	if cfg.Embedding.APIKey == "" {
		logger.Warn("No embedding provider configured, semantic reranking disabled")
		return nil
	}

	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})

	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	cached := embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
	return domain.NewTimeoutEmbedder(cached, time.Duration(cfg.Embedding.TimeoutSec)*time.Second)
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

// newEmbeddingHealthChecker returns nil (not a typed nil wrapper) when no
// embedder is configured, so the health service skips the check entirely.
func newEmbeddingHealthChecker(embedder domain.Embedder) healthuc.EmbeddingChecker {
	if embedder == nil {
		return nil
	}
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
