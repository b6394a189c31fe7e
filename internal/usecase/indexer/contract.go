package indexer

import (
	"context"

	"github.com/kailas-cloud/domek/internal/domain/listing"
	"github.com/kailas-cloud/domek/internal/repository/embeddings"
)

// listingStore is the consumer interface over the listings repository (ISP).
type listingStore interface {
	Put(ctx context.Context, l listing.Listing) error
	Delete(ctx context.Context, p listing.Partition, id string) error
}

// vectorStore is the consumer interface over the embeddings repository.
type vectorStore interface {
	Put(ctx context.Context, rec embeddings.Record) error
	PutMulti(ctx context.Context, recs []embeddings.Record) error
	Delete(ctx context.Context, id string) error
}
