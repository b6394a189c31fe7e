package filterengine

import (
	"context"

	"github.com/kailas-cloud/domek/internal/domain/listing"
	"github.com/kailas-cloud/domek/internal/domain/query"
)

// store is the consumer interface over the listings repository (ISP).
type store interface {
	Query(ctx context.Context, p listing.Partition, q query.Query, limit int) ([]listing.Listing, error)
}
