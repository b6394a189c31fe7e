package extract

import (
	"context"

	"github.com/kailas-cloud/domek/internal/domain/criteria"
)

// Extractor produces structured criteria from a free-text query using an
// external capability (LLM function calling).
type Extractor interface {
	Extract(ctx context.Context, query string) (criteria.Criteria, error)
}
