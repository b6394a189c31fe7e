package search

import "github.com/kailas-cloud/domek/internal/domain/listing"

// Provenance marks which scoring strategy produced a ranked result. The
// orchestrator picks exactly one strategy per query: provenance is never
// mixed within a single winner set.
type Provenance string

const (
	// ProvenanceSemantic means cosine similarity over the candidate subset.
	ProvenanceSemantic Provenance = "semantic"
	// ProvenanceKeyword means term-frequency fallback scoring.
	ProvenanceKeyword Provenance = "keyword"
	// ProvenanceStructuredOnly means the filtered candidates were returned
	// unscored because neither scorer produced results.
	ProvenanceStructuredOnly Provenance = "structured_only"
)

// Ranked is a scored listing reference produced by a scorer. For semantic
// results the score is a similarity in [0, 1] (1 = identical direction).
type Ranked struct {
	ID    string
	Score float64
}

// Result is a single search hit: a listing plus its relevance score and
// the strategy that produced it.
type Result struct {
	listing    listing.Listing
	score      float64
	provenance Provenance
}

// New creates a search result.
func New(l listing.Listing, score float64, provenance Provenance) Result {
	return Result{listing: l, score: score, provenance: provenance}
}

// Listing returns the matched listing.
func (r *Result) Listing() listing.Listing { return r.listing }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }

// Provenance returns the scoring strategy marker.
func (r *Result) Provenance() Provenance { return r.provenance }
