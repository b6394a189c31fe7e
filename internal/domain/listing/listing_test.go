package listing

import "testing"

func TestIDFromLink(t *testing.T) {
	id := IDFromLink("https://example.com/offer/42")

	if len(id) != 32 {
		t.Errorf("id length = %d, want 32 hex chars", len(id))
	}
	if id != IDFromLink("https://example.com/offer/42") {
		t.Error("id not stable for identical link")
	}
	if id != IDFromLink("  https://example.com/offer/42  ") {
		t.Error("surrounding whitespace should not change the id")
	}
	if id == IDFromLink("https://example.com/offer/43") {
		t.Error("different links collided")
	}
}

func TestBuildYearInt(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"2015", 2015, true},
		{" 1998 ", 1998, true},
		{"", 0, false},
		{"before the war", 0, false},
		{"2015r", 0, false},
	}

	for _, tt := range tests {
		l := Listing{BuildYear: tt.raw}
		got, ok := l.BuildYearInt()
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("BuildYearInt(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestChunkIDRoundTrip(t *testing.T) {
	id := ChunkID("abc123", 2)
	if id != "abc123_chunk_2" {
		t.Errorf("chunk id = %q", id)
	}
	if got := BaseID(id); got != "abc123" {
		t.Errorf("BaseID(%q) = %q, want abc123", id, got)
	}
}

func TestBaseIDNonChunk(t *testing.T) {
	if got := BaseID("plain"); got != "plain" {
		t.Errorf("BaseID(plain) = %q", got)
	}
	// A suffix that is not numeric is part of the id, not a chunk marker.
	if got := BaseID("weird_chunk_x"); got != "weird_chunk_x" {
		t.Errorf("BaseID(weird_chunk_x) = %q", got)
	}
}

func TestPartitionsOrder(t *testing.T) {
	ps := Partitions()
	if len(ps) != 2 || ps[0] != PartitionRent || ps[1] != PartitionSale {
		t.Errorf("partitions = %v, want rent then sale", ps)
	}
}
