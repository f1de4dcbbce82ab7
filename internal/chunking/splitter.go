package chunking

import (
	"strings"
	"unicode/utf8"
)

// advanceRunes returns the byte offset n runes after from, capped at hi.
func advanceRunes(text string, from, n, hi int) int {
	pos := from
	for i := 0; i < n && pos < hi; i++ {
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	if pos > hi {
		pos = hi
	}
	return pos
}

// retreatRunes returns the byte offset n runes before from, floored at lo.
func retreatRunes(text string, from, n, lo int) int {
	pos := from
	for i := 0; i < n && pos > lo; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:pos])
		pos -= size
	}
	if pos < lo {
		pos = lo
	}
	return pos
}

// cutPoint picks the split position for a window ending at end. It prefers a
// paragraph boundary, then a newline, then a sentence boundary, matching the
// fallback order used when splitting oversized sections.
func cutPoint(text string, start, end int) int {
	window := text[start:end]
	if i := strings.LastIndex(window, "\n\n"); i > 0 {
		return start + i + 2
	}
	if i := strings.LastIndex(window, "\n"); i > 0 {
		return start + i + 1
	}
	if i := strings.LastIndex(window, ". "); i > 0 {
		return start + i + 2
	}
	return end
}

// splitWindow splits text[lo:hi) into sliding windows of pol.WindowSize runes
// with pol.Overlap runes shared between adjacent spans. Every span boundary
// lands on a rune boundary, and each next span starts at most Overlap runes
// before the previous span's end, so reassembly is exact.
func splitWindow(text string, lo, hi int, pol Policy) []span {
	if lo >= hi {
		return nil
	}

	var spans []span
	start := lo
	for start < hi {
		end := advanceRunes(text, start, pol.WindowSize, hi)
		if end >= hi {
			spans = append(spans, span{Start: start, End: hi})
			break
		}

		cut := cutPoint(text, start, end)
		spans = append(spans, span{Start: start, End: cut})

		next := retreatRunes(text, cut, pol.Overlap, lo)
		if next <= start {
			// Overlap would stall progress; continue without it.
			next = cut
		}
		start = next
	}
	return spans
}

// splitSections splits the text at markdown heading lines. Each section spans
// from one heading to the next; content before the first heading forms its own
// section. Sections larger than the window size fall back to the sliding
// window splitter within the section, so no span crosses a heading boundary.
func splitSections(text string, l layout, pol Policy) []span {
	if len(text) == 0 {
		return nil
	}

	boundaries := []int{0}
	for _, h := range l.Headings {
		if h.Offset > boundaries[len(boundaries)-1] {
			boundaries = append(boundaries, h.Offset)
		}
	}
	boundaries = append(boundaries, len(text))

	var spans []span
	for i := 0; i+1 < len(boundaries); i++ {
		lo, hi := boundaries[i], boundaries[i+1]
		if lo >= hi {
			continue
		}
		if utf8.RuneCountInString(text[lo:hi]) <= pol.WindowSize {
			spans = append(spans, span{Start: lo, End: hi})
			continue
		}
		spans = append(spans, splitWindow(text, lo, hi, pol)...)
	}
	return spans
}

// splitCodeAware splits like splitWindow but never places a span boundary
// strictly inside a fenced code block. A cut that would land inside a fence
// is pushed to the fence end, which may leave an oversized span; the fence is
// kept whole either way. Overlap that would start inside a fence is clamped
// to the fence end.
func splitCodeAware(text string, l layout, pol Policy) []span {
	if len(text) == 0 {
		return nil
	}

	hi := len(text)
	var spans []span
	start := 0
	for start < hi {
		end := advanceRunes(text, start, pol.WindowSize, hi)
		if end >= hi {
			spans = append(spans, span{Start: start, End: hi})
			break
		}

		cut := cutPoint(text, start, end)
		if f, inside := l.fenceAt(cut); inside {
			cut = f.End
		}
		if cut >= hi {
			spans = append(spans, span{Start: start, End: hi})
			break
		}
		spans = append(spans, span{Start: start, End: cut})

		next := retreatRunes(text, cut, pol.Overlap, 0)
		if f, inside := l.fenceAt(next); inside {
			next = f.End
		}
		if next <= start || next > cut {
			next = cut
		}
		start = next
	}
	return spans
}
