// Package rerank orders a filtered candidate subset by cosine similarity to
// the query embedding. It is a brute-force scorer over at most the filter
// cap's worth of vectors; no approximate index is involved, so the ranking
// is exact for the subset it is given.
package rerank

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/domek/internal/domain"
	"github.com/kailas-cloud/domek/internal/domain/listing"
	"github.com/kailas-cloud/domek/internal/domain/search"
	"github.com/kailas-cloud/domek/internal/repository/embeddings"
)

// vectors is the consumer interface over the embeddings repository (ISP).
type vectors interface {
	Get(ctx context.Context, id string) (embeddings.Record, bool, error)
}

// Service scores candidates against the query embedding.
type Service struct {
	vectors  vectors
	embedder domain.Embedder
	pool     *ants.Pool
	logger   *zap.Logger
}

// New creates the reranker with a fixed-size similarity worker pool.
func New(v vectors, embedder domain.Embedder, workers int, logger *zap.Logger) (*Service, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create rerank pool: %w", err)
	}
	return &Service{vectors: v, embedder: embedder, pool: pool, logger: logger}, nil
}

// Close releases the worker pool.
func (s *Service) Close() {
	s.pool.Release()
}

// Rank embeds the (synonym-expanded) query once and scores every candidate
// concurrently. Candidates without a stored vector get one derived from
// their composed text; candidates that still cannot be covered are skipped
// rather than scored as zero. Ties keep the candidates' input order. An
// empty candidate set ranks to an empty result without touching the
// embedder. The error is non-nil only when the query itself cannot be
// embedded; the caller then swaps strategies wholesale.
func (s *Service) Rank(ctx context.Context, query string, candidates []listing.Listing, topK int) ([]search.Ranked, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	qres, err := s.embedder.Embed(ctx, expandQuery(query))
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	qvec := qres.Embedding
	qnorm := norm(qvec)
	if qnorm == 0 {
		return nil, fmt.Errorf("query embedding has zero norm: %w", domain.ErrEmbeddingProviderError)
	}

	scores := make([]float64, len(candidates))
	covered := make([]bool, len(candidates))

	var wg sync.WaitGroup
	for i := range candidates {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			vec, ok := s.candidateVector(ctx, candidates[i])
			if !ok || len(vec) != len(qvec) {
				return
			}
			scores[i] = cosine(qvec, qnorm, vec)
			covered[i] = true
		}
		// A saturated pool degrades to inline execution instead of dropping
		// the candidate.
		if err := s.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	order := make([]int, 0, len(candidates))
	for i := range candidates {
		if covered[i] {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if topK > 0 && len(order) > topK {
		order = order[:topK]
	}

	ranked := make([]search.Ranked, 0, len(order))
	for _, i := range order {
		ranked = append(ranked, search.Ranked{ID: candidates[i].ID, Score: scores[i]})
	}
	return ranked, nil
}

// candidateVector returns the stored vector for a candidate, deriving one
// from the composed listing text when the store has no coverage.
func (s *Service) candidateVector(ctx context.Context, l listing.Listing) ([]float32, bool) {
	rec, ok, err := s.vectors.Get(ctx, l.ID)
	if err != nil {
		s.logger.Warn("Vector lookup failed", zap.String("listing_id", l.ID), zap.Error(err))
	}
	if ok && len(rec.Vector) > 0 {
		return rec.Vector, true
	}

	res, err := s.embedder.Embed(ctx, listing.Compose(l))
	if err != nil {
		s.logger.Warn("On-demand embedding failed", zap.String("listing_id", l.ID), zap.Error(err))
		return nil, false
	}
	return res.Embedding, true
}

// cosine computes dot(q, d) / (|q| * |d|), clamped to [0, 1]. Negative
// similarities carry no ranking value for this corpus and are reported as 0.
func cosine(q []float32, qnorm float64, d []float32) float64 {
	var dot, dsq float64
	for i := range q {
		dot += float64(q[i]) * float64(d[i])
		dsq += float64(d[i]) * float64(d[i])
	}
	if dsq == 0 {
		return 0
	}
	sim := dot / (qnorm * math.Sqrt(dsq))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

func norm(v []float32) float64 {
	var sq float64
	for _, f := range v {
		sq += float64(f) * float64(f)
	}
	return math.Sqrt(sq)
}
