package listing

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitTextShortPassesThrough(t *testing.T) {
	chunks := SplitText("short text", 100, 20)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("chunks = %v, want the text unchanged", chunks)
	}
}

func TestSplitTextRespectsSize(t *testing.T) {
	text := strings.Repeat("Zdanie o mieszkaniu. ", 60)
	chunks := SplitText(text, 200, 40)

	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want several", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 200+40 {
			t.Errorf("chunk %d is %d chars, want bounded by size+overlap", i, len(c))
		}
	}
}

func TestSplitTextPrefersSectionBoundaries(t *testing.T) {
	sectionA := "OGŁOSZENIE: " + strings.Repeat("a", 80)
	sectionB := "OPIS: " + strings.Repeat("b", 80)
	text := sectionA + SectionSeparator + sectionB

	chunks := SplitText(text, 100, 0)
	if len(chunks) < 2 {
		t.Fatalf("chunks = %v, want split at the section boundary", chunks)
	}
	if !strings.HasPrefix(chunks[0], "OGŁOSZENIE:") {
		t.Errorf("first chunk = %q", chunks[0])
	}
	if !strings.Contains(chunks[len(chunks)-1], "OPIS:") {
		t.Errorf("last chunk = %q", chunks[len(chunks)-1])
	}
}

func TestSplitTextCoversAllContent(t *testing.T) {
	text := strings.Repeat("unikalny fragment numer X. ", 40)
	chunks := SplitText(text, 150, 0)

	joined := strings.Join(chunks, "")
	if len(joined) < len(text) {
		t.Errorf("joined chunks are %d chars, source %d; content lost", len(joined), len(text))
	}
}

func TestSplitTextHardSplitKeepsRunes(t *testing.T) {
	// No separators at all, so every cut is a hard split; the odd size
	// would land mid-rune without boundary handling.
	text := strings.Repeat("ó", 200)
	chunks := SplitText(text, 101, 0)

	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want several", len(chunks))
	}
	var joined strings.Builder
	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, c)
		}
		joined.WriteString(c)
	}
	if joined.String() != text {
		t.Error("hard-split chunks do not reassemble the source")
	}
}

func TestSplitTextOverlapKeepsRunes(t *testing.T) {
	text := strings.Repeat("Świetne mieszkanie przy ulicy Żelaznej. ", 40)
	chunks := SplitText(text, 150, 41)

	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want several", len(chunks))
	}
	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, c)
		}
	}
}

func TestContextPrefix(t *testing.T) {
	rooms, price := 2, 3000
	l := Listing{ID: "abc", City: "Warszawa", RoomCount: &rooms, Price: &price}

	got := ContextPrefix(l)
	want := "ID_abc Warszawa 2pok 3000zł"
	if got != want {
		t.Errorf("prefix = %q, want %q", got, want)
	}

	if got := ContextPrefix(Listing{}); got != "" {
		t.Errorf("empty listing prefix = %q, want empty", got)
	}
}
