// Package filterengine narrows the listings store to a candidate set for
// reranking. It compiles criteria into a structured query, fans out over the
// targeted partitions in canonical order, and caps the combined candidate
// set so downstream scoring stays bounded.
package filterengine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/domek/internal/domain/criteria"
	"github.com/kailas-cloud/domek/internal/domain/listing"
	"github.com/kailas-cloud/domek/internal/domain/query"
	"github.com/kailas-cloud/domek/internal/metrics"
)

// Service produces filtered candidate sets.
type Service struct {
	store  store
	limit  int
	logger *zap.Logger
}

// New creates the filter engine. limit caps the candidate set across all
// searched partitions.
func New(s store, limit int, logger *zap.Logger) *Service {
	return &Service{store: s, limit: limit, logger: logger}
}

// Filter returns listings satisfying the criteria, at most limit of them.
// When the criteria target both partitions, rent candidates come first and
// the cap applies to the concatenation. Store failures are fatal for the
// query; there is no degraded answer without a candidate set.
func (s *Service) Filter(ctx context.Context, c criteria.Criteria) ([]listing.Listing, error) {
	q := query.Build(c)

	var candidates []listing.Listing
	for _, p := range q.Partitions() {
		remaining := s.limit - len(candidates)
		if remaining <= 0 {
			break
		}
		matched, err := s.store.Query(ctx, p, q, remaining)
		if err != nil {
			return nil, fmt.Errorf("filter %s partition: %w", p, err)
		}
		candidates = append(candidates, matched...)
	}

	metrics.SearchCandidates.Observe(float64(len(candidates)))
	s.logger.Debug("Structured filter complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("partitions", len(q.Partitions())))

	return candidates, nil
}
