package domain

import (
	"context"
	"time"
)

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// TimeoutEmbedder bounds every Embed call with a deadline. Outermost in the
// decorator chain so the bound covers cache lookups too.
type TimeoutEmbedder struct {
	inner   Embedder
	timeout time.Duration
}

// NewTimeoutEmbedder wraps an embedder with a per-call timeout.
func NewTimeoutEmbedder(inner Embedder, timeout time.Duration) *TimeoutEmbedder {
	return &TimeoutEmbedder{inner: inner, timeout: timeout}
}

// Embed implements Embedder.
func (t *TimeoutEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Embed(ctx, text)
}

// HealthCheck delegates to the inner embedder when it supports checks.
func (t *TimeoutEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := t.inner.(HealthChecker); ok {
		ctx, cancel := context.WithTimeout(ctx, t.timeout)
		defer cancel()
		return hc.HealthCheck(ctx)
	}
	return nil
}
