package keyword

import (
	"testing"

	"github.com/kailas-cloud/domek/internal/domain/listing"
)

func TestRankCountsOccurrences(t *testing.T) {
	s := New()
	candidates := []listing.Listing{
		{ID: "once", Title: "Mieszkanie z balkonem"},
		{ID: "twice", Title: "Balkon od salonu", Description: "duży balkon"},
		{ID: "none", Title: "Kawalerka w centrum"},
	}

	ranked := s.Rank("balkon", candidates, 0)
	if len(ranked) != 2 {
		t.Fatalf("ranked = %d entries, want 2 (zero scores dropped)", len(ranked))
	}
	if ranked[0].ID != "twice" || ranked[0].Score != 2 {
		t.Errorf("top = %+v, want twice with score 2", ranked[0])
	}
	if ranked[1].ID != "once" || ranked[1].Score != 1 {
		t.Errorf("second = %+v, want once with score 1", ranked[1])
	}
}

func TestRankSearchesDistrict(t *testing.T) {
	s := New()
	candidates := []listing.Listing{
		{ID: "a", Title: "Mieszkanie", District: "Mokotów"},
	}

	ranked := s.Rank("mokotów", candidates, 0)
	if len(ranked) != 1 || ranked[0].ID != "a" {
		t.Errorf("ranked = %v, want district match", ranked)
	}
}

func TestRankCaseInsensitive(t *testing.T) {
	s := New()
	candidates := []listing.Listing{
		{ID: "a", Title: "BALKON"},
	}

	if ranked := s.Rank("Balkon", candidates, 0); len(ranked) != 1 {
		t.Errorf("ranked = %v, want case-insensitive match", ranked)
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	s := New()
	candidates := []listing.Listing{
		{ID: "b", Title: "winda"},
		{ID: "a", Title: "winda"},
	}

	ranked := s.Rank("winda", candidates, 0)
	if ranked[0].ID != "b" || ranked[1].ID != "a" {
		t.Errorf("tie order = %v, want input order b, a", ranked)
	}
}

func TestRankTruncatesAfterSort(t *testing.T) {
	s := New()
	candidates := []listing.Listing{
		{ID: "low", Title: "garaż"},
		{ID: "high", Title: "garaż garaż garaż"},
	}

	ranked := s.Rank("garaż", candidates, 1)
	if len(ranked) != 1 || ranked[0].ID != "high" {
		t.Errorf("ranked = %v, want [high]", ranked)
	}
}

func TestRankEmptyInputs(t *testing.T) {
	s := New()

	if ranked := s.Rank("", []listing.Listing{{ID: "a", Title: "x"}}, 5); ranked != nil {
		t.Errorf("blank query ranked = %v, want nil", ranked)
	}
	if ranked := s.Rank("balkon", nil, 5); ranked != nil {
		t.Errorf("no candidates ranked = %v, want nil", ranked)
	}
}

func TestRankMultiTermSumsCounts(t *testing.T) {
	s := New()
	candidates := []listing.Listing{
		{ID: "both", Title: "balkon i winda"},
		{ID: "one", Title: "tylko balkon"},
	}

	ranked := s.Rank("balkon winda", candidates, 0)
	if ranked[0].ID != "both" || ranked[0].Score != 2 {
		t.Errorf("top = %+v, want both with score 2", ranked[0])
	}
}
