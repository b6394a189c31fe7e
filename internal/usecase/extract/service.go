package extract

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/domek/internal/domain/criteria"
	"github.com/kailas-cloud/domek/internal/metrics"
)

// Service resolves free text into criteria. When an extraction model is
// configured it is tried first under its own timeout; any failure degrades
// to the deterministic rules. Extraction therefore never fails the search.
type Service struct {
	capability Extractor // nil when no extraction model is configured
	rules      *Rules
	timeout    time.Duration
	logger     *zap.Logger
}

// New creates the extraction service. capability may be nil.
func New(capability Extractor, timeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		capability: capability,
		rules:      NewRules(),
		timeout:    timeout,
		logger:     logger,
	}
}

// Extract returns the criteria for a query. An empty or blank query yields
// the all-unknown record without consulting either extractor.
func (s *Service) Extract(ctx context.Context, query string) criteria.Criteria {
	if strings.TrimSpace(query) == "" {
		return criteria.Criteria{}
	}

	if s.capability != nil {
		capCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		c, err := s.capability.Extract(capCtx, query)
		if err == nil {
			c.Normalize()
			return c
		}

		metrics.ExtractionFallbacksTotal.Inc()
		s.logger.Warn("Criteria extraction degraded to rules",
			zap.String("query", logQuery(query)),
			zap.Error(err))
	}

	c := s.rules.Apply(query)
	c.Normalize()
	return c
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
