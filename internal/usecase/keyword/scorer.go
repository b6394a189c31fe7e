// Package keyword is the degraded scoring strategy: crude substring
// counting over listing text. It exists so a search still ranks something
// when no embedding provider is reachable; it is deliberately simple and
// makes no linguistic claims beyond case folding.
package keyword

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/domek/internal/domain/listing"
	"github.com/kailas-cloud/domek/internal/domain/search"
)

// Scorer ranks candidates by query-term occurrence counts.
type Scorer struct{}

// New creates the keyword scorer.
func New() *Scorer {
	return &Scorer{}
}

// Rank tokenizes the query on whitespace and scores each candidate by the
// total number of (possibly overlapping-term) occurrences across its title,
// description, and district. Zero-score candidates are dropped. Ties keep
// the candidates' input order; truncation to topK happens after the full
// sort.
func (s *Scorer) Rank(query string, candidates []listing.Listing, topK int) []search.Ranked {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 || len(candidates) == 0 {
		return nil
	}

	var ranked []search.Ranked
	for _, l := range candidates {
		text := strings.ToLower(l.Title + " " + l.Description + " " + l.District)
		count := 0
		for _, term := range terms {
			count += strings.Count(text, term)
		}
		if count == 0 {
			continue
		}
		ranked = append(ranked, search.Ranked{ID: l.ID, Score: float64(count)})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
