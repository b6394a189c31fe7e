// Package indexer ingests listings: it stores the structured record, then
// composes the semantic text and persists its embedding. Long texts are
// chunked before embedding, each chunk prefixed with the listing's key
// facts so it ranks sensibly in isolation.
package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/domek/internal/domain"
	"github.com/kailas-cloud/domek/internal/domain/listing"
	"github.com/kailas-cloud/domek/internal/repository/embeddings"
)

// Service ingests and evicts listings.
type Service struct {
	listings listingStore
	vectors  vectorStore
	embedder domain.Embedder // nil when no embedding capability is configured
	logger   *zap.Logger
}

// New creates the indexer. embedder may be nil; listings are then stored
// without semantic coverage and remain reachable through the structured
// filter and keyword scoring.
func New(ls listingStore, vs vectorStore, embedder domain.Embedder, logger *zap.Logger) *Service {
	return &Service{listings: ls, vectors: vs, embedder: embedder, logger: logger}
}

// Index stores a listing and refreshes its embedding records. A missing ID
// is derived from the source link. Embedding failures do not fail the
// ingest: the structured record is already durable and the reranker can
// derive a vector on demand later.
func (s *Service) Index(ctx context.Context, l listing.Listing) error {
	if l.ID == "" {
		if l.Link == "" {
			return fmt.Errorf("listing needs an id or a source link")
		}
		l.ID = listing.IDFromLink(l.Link)
	}
	if l.Partition == "" {
		return fmt.Errorf("listing partition is required")
	}

	if err := s.listings.Put(ctx, l); err != nil {
		return fmt.Errorf("store listing %s: %w", l.ID, err)
	}

	if s.embedder == nil {
		return nil
	}
	if err := s.embed(ctx, l); err != nil {
		s.logger.Warn("Listing stored without semantic coverage",
			zap.String("listing_id", l.ID), zap.Error(err))
	}
	return nil
}

// Delete evicts a listing and all of its embedding records.
func (s *Service) Delete(ctx context.Context, p listing.Partition, id string) error {
	if err := s.listings.Delete(ctx, p, id); err != nil {
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	if err := s.vectors.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete embeddings %s: %w", id, err)
	}
	return nil
}

func (s *Service) embed(ctx context.Context, l listing.Listing) error {
	// Stale chunk records from a previous, longer version of the text must
	// not survive a re-index.
	if err := s.vectors.Delete(ctx, l.ID); err != nil {
		return fmt.Errorf("clear old embeddings: %w", err)
	}

	text := listing.Compose(l)
	if len(text) <= listing.DefaultChunkSize {
		rec, err := s.embedRecord(ctx, l.ID, text)
		if err != nil {
			return err
		}
		if err := s.vectors.Put(ctx, rec); err != nil {
			return fmt.Errorf("store embedding %s: %w", l.ID, err)
		}
		return nil
	}

	prefix := listing.ContextPrefix(l)
	chunks := listing.SplitText(text, listing.DefaultChunkSize, listing.DefaultChunkOverlap)
	recs := make([]embeddings.Record, 0, len(chunks))
	for i, chunk := range chunks {
		rec, err := s.embedRecord(ctx, listing.ChunkID(l.ID, i), prefix+" "+chunk)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}
	// One pipelined write so a crash mid-index cannot leave a partial
	// chunk set behind the already-cleared old records.
	if err := s.vectors.PutMulti(ctx, recs); err != nil {
		return fmt.Errorf("store embeddings %s: %w", l.ID, err)
	}
	s.logger.Debug("Indexed chunked listing",
		zap.String("listing_id", l.ID), zap.Int("chunks", len(chunks)))
	return nil
}

func (s *Service) embedRecord(ctx context.Context, id, text string) (embeddings.Record, error) {
	res, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return embeddings.Record{}, fmt.Errorf("embed %s: %w", id, err)
	}
	return embeddings.Record{ID: id, Vector: res.Embedding, Text: text}, nil
}
