package listing

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Default chunking parameters for indexing long composed texts.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// splitSeparators is the split hierarchy, coarsest first: section boundary,
// in-section boundary, then progressively finer text breaks.
var splitSeparators = []string{SectionSeparator, FieldSeparator, "\n\n", "\n", ". ", " "}

// SplitText splits composed text into chunks of at most size characters with
// the requested overlap, preferring to break on section separators. Text
// that already fits is returned as a single chunk.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
	}
	if len(text) <= size {
		return []string{text}
	}

	pieces := splitRecursive(text, size, splitSeparators)

	// Pack pieces greedily, carrying overlap characters between chunks.
	var chunks []string
	var cur strings.Builder
	for _, p := range pieces {
		if cur.Len() > 0 && cur.Len()+len(p) > size {
			chunk := cur.String()
			chunks = append(chunks, chunk)
			cur.Reset()
			if overlap > 0 && len(chunk) > overlap {
				tail := chunk[len(chunk)-overlap:]
				// Do not carry a partial rune into the next chunk.
				for len(tail) > 0 && !utf8.RuneStart(tail[0]) {
					tail = tail[1:]
				}
				cur.WriteString(tail)
			}
		}
		cur.WriteString(p)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

func splitRecursive(text string, size int, seps []string) []string {
	if len(text) <= size {
		return []string{text}
	}
	if len(seps) == 0 {
		// No separator left; hard split on rune boundaries.
		var out []string
		for len(text) > size {
			cut := cutAtRune(text, size)
			if cut == "" {
				cut = text[:size]
			}
			out = append(out, cut)
			text = text[len(cut):]
		}
		if text != "" {
			out = append(out, text)
		}
		return out
	}

	sep := seps[0]
	parts := strings.SplitAfter(text, sep)
	var out []string
	for _, p := range parts {
		if len(p) > size {
			out = append(out, splitRecursive(p, size, seps[1:])...)
		} else if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ContextPrefix builds a short identifying prefix prepended to every chunk
// so that a chunk embedded in isolation still carries the listing's key
// facts.
func ContextPrefix(l Listing) string {
	var parts []string
	if l.ID != "" {
		parts = append(parts, "ID_"+l.ID)
	}
	if l.City != "" {
		parts = append(parts, l.City)
	}
	if l.RoomCount != nil {
		parts = append(parts, strconv.Itoa(*l.RoomCount)+"pok")
	}
	if l.Price != nil {
		parts = append(parts, strconv.Itoa(*l.Price)+"zł")
	}
	return strings.Join(parts, " ")
}
