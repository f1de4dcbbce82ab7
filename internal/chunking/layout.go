package chunking

import "strings"

// span is a half-open byte range [Start, End) in the source text.
type span struct {
	Start int
	End   int
}

// contains reports whether pos falls strictly inside the span.
// Positions exactly at the span edges are valid chunk boundaries.
func (s span) contains(pos int) bool {
	return pos > s.Start && pos < s.End
}

// headingMark records a markdown heading line found outside code fences.
type headingMark struct {
	// Offset is the byte offset of the start of the heading line.
	Offset int
	// Level is the ATX heading level (1-6).
	Level int
	// Title is the heading text with markers stripped.
	Title string
}

// layout holds the offset-accurate structural map of a document used by the
// splitters: fenced code block spans and heading line positions.
type layout struct {
	Fences   []span
	Headings []headingMark
}

// scanLayout walks the text line by line and records fenced code block spans
// and heading offsets. A fence span covers the delimiter lines themselves; an
// unclosed fence extends to the end of the text.
func scanLayout(text string) layout {
	var l layout

	inFence := false
	fenceStart := 0
	var fenceMarker string

	pos := 0
	for pos < len(text) {
		lineEnd := strings.IndexByte(text[pos:], '\n')
		var next int
		if lineEnd == -1 {
			lineEnd = len(text)
			next = len(text)
		} else {
			lineEnd = pos + lineEnd
			next = lineEnd + 1
		}
		line := text[pos:lineEnd]
		trimmed := strings.TrimLeft(line, " \t")

		switch {
		case !inFence && (strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")):
			inFence = true
			fenceStart = pos
			fenceMarker = trimmed[:3]

		case inFence && strings.HasPrefix(trimmed, fenceMarker):
			inFence = false
			l.Fences = append(l.Fences, span{Start: fenceStart, End: next})

		case !inFence:
			if level, title, ok := parseHeadingLine(trimmed); ok {
				l.Headings = append(l.Headings, headingMark{
					Offset: pos,
					Level:  level,
					Title:  title,
				})
			}
		}

		pos = next
	}

	if inFence {
		l.Fences = append(l.Fences, span{Start: fenceStart, End: len(text)})
	}

	return l
}

// parseHeadingLine parses an ATX heading line ("# Title" through "###### Title").
func parseHeadingLine(line string) (level int, title string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	rest := line[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	title = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(rest), "#"))
	return level, title, true
}

// fenceAt returns the fence span strictly containing pos, if any.
func (l layout) fenceAt(pos int) (span, bool) {
	for _, f := range l.Fences {
		if f.contains(pos) {
			return f, true
		}
	}
	return span{}, false
}

// sectionFor returns the title of the last heading at or before pos.
func (l layout) sectionFor(pos int) string {
	section := ""
	for _, h := range l.Headings {
		if h.Offset > pos {
			break
		}
		section = h.Title
	}
	return section
}
