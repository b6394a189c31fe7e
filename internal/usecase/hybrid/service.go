// Package hybrid orchestrates the search pipeline: criteria extraction,
// structured filtering, then exactly one scoring strategy over the filtered
// candidates. Strategies are swapped wholesale, never blended, so every
// result set carries a single provenance and scores stay comparable within
// it.
package hybrid

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/domek/internal/domain/listing"
	"github.com/kailas-cloud/domek/internal/domain/search"
	"github.com/kailas-cloud/domek/internal/metrics"
)

// Service is the search orchestrator.
type Service struct {
	extractor   extractor
	filter      filter
	reranker    reranker // nil disables the semantic strategy
	keyword     keywordScorer
	defaultTopK int
	logger      *zap.Logger
}

// New creates the orchestrator. reranker may be nil.
func New(
	ex extractor,
	f filter,
	r reranker,
	kw keywordScorer,
	defaultTopK int,
	logger *zap.Logger,
) *Service {
	return &Service{
		extractor:   ex,
		filter:      f,
		reranker:    r,
		keyword:     kw,
		defaultTopK: defaultTopK,
		logger:      logger,
	}
}

// Search runs the full pipeline. topK <= 0 selects the configured default.
// The strategy cascade is semantic, then keyword, then structured-only:
// each step takes over the whole result set when the previous one fails or
// ranks nothing. An empty candidate set is a valid empty answer; only a
// store failure is an error.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]search.Result, error) {
	if topK <= 0 {
		topK = s.defaultTopK
	}

	crit := s.extractor.Extract(ctx, query)

	candidates, err := s.filter.Filter(ctx, crit)
	if err != nil {
		return nil, fmt.Errorf("structured filter: %w", err)
	}
	if len(candidates) == 0 {
		s.observe(query, "none", 0, 0)
		return []search.Result{}, nil
	}

	if s.reranker != nil {
		ranked, err := s.reranker.Rank(ctx, query, candidates, topK)
		if err != nil {
			s.logger.Warn("Semantic strategy failed, swapping to keyword",
				zap.String("query", logQuery(query)),
				zap.Error(err))
		} else if len(ranked) > 0 {
			s.observe(query, string(search.ProvenanceSemantic), len(candidates), len(ranked))
			return assemble(candidates, ranked, search.ProvenanceSemantic), nil
		}
	}

	if ranked := s.keyword.Rank(query, candidates, topK); len(ranked) > 0 {
		s.observe(query, string(search.ProvenanceKeyword), len(candidates), len(ranked))
		return assemble(candidates, ranked, search.ProvenanceKeyword), nil
	}

	// Neither scorer ranked anything; the structured match is still an
	// answer, just an unscored one.
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	results := make([]search.Result, 0, len(candidates))
	for _, l := range candidates {
		results = append(results, search.New(l, 0, search.ProvenanceStructuredOnly))
	}
	s.observe(query, string(search.ProvenanceStructuredOnly), len(candidates), len(results))
	return results, nil
}

// assemble resolves ranked IDs back to their listings, preserving rank
// order. Every ranked ID comes from the candidate set by construction.
func assemble(candidates []listing.Listing, ranked []search.Ranked, p search.Provenance) []search.Result {
	byID := make(map[string]listing.Listing, len(candidates))
	for _, l := range candidates {
		byID[l.ID] = l
	}

	results := make([]search.Result, 0, len(ranked))
	for _, r := range ranked {
		l, ok := byID[r.ID]
		if !ok {
			continue
		}
		results = append(results, search.New(l, r.Score, p))
	}
	return results
}

func (s *Service) observe(query, strategy string, candidates, results int) {
	if strategy != "none" {
		metrics.SearchesTotal.WithLabelValues(strategy).Inc()
	}
	s.logger.Info("Search complete",
		zap.String("strategy", strategy),
		zap.String("query", logQuery(query)),
		zap.Int("candidates", candidates),
		zap.Int("results", results),
		zap.Int("query_len", len(query)))
}

// logQuery bounds the query text carried on log lines.
func logQuery(q string) string {
	const max = 200
	if len(q) <= max {
		return q
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(q[cut]) {
		cut--
	}
	return q[:cut]
}
