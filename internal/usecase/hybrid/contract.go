package hybrid

import (
	"context"

	"github.com/kailas-cloud/domek/internal/domain/criteria"
	"github.com/kailas-cloud/domek/internal/domain/listing"
	"github.com/kailas-cloud/domek/internal/domain/search"
)

// extractor resolves free text into criteria; it never fails.
type extractor interface {
	Extract(ctx context.Context, query string) criteria.Criteria
}

// filter produces the structured candidate set.
type filter interface {
	Filter(ctx context.Context, c criteria.Criteria) ([]listing.Listing, error)
}

// reranker is the semantic scoring strategy. nil in the orchestrator means
// no embedding capability is configured.
type reranker interface {
	Rank(ctx context.Context, query string, candidates []listing.Listing, topK int) ([]search.Ranked, error)
}

// keywordScorer is the degraded scoring strategy; it cannot fail.
type keywordScorer interface {
	Rank(query string, candidates []listing.Listing, topK int) []search.Ranked
}
