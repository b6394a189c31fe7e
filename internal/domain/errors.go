package domain

import "errors"

var (
	// ErrListingNotFound signals a missing listing.
	ErrListingNotFound = errors.New("listing not found")
	// ErrStoreUnavailable signals that the listings store cannot be reached.
	// Fatal for the current query; the caller may retry the whole query.
	ErrStoreUnavailable = errors.New("listings store unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrNoStructuredOutput signals that the extraction service produced no
	// structured criteria (no function call, or undecodable arguments).
	// Recovered locally via the rules fallback, never surfaced to callers.
	ErrNoStructuredOutput = errors.New("no structured output from extraction service")
)
