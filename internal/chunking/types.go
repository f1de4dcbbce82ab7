package chunking

import "fmt"

// Category is the label assigned to a document by the classifier.
// The set is closed: every document maps to exactly one of these.
type Category string

const (
	CategoryAPIReference    Category = "api-reference"
	CategoryPolicy          Category = "policy"
	CategoryTroubleshooting Category = "troubleshooting"
	CategoryGeneric         Category = "generic"
)

// Categories returns all valid categories in priority order.
func Categories() []Category {
	return []Category{
		CategoryAPIReference,
		CategoryPolicy,
		CategoryTroubleshooting,
		CategoryGeneric,
	}
}

// Valid reports whether the category is one of the closed enumeration.
func (c Category) Valid() bool {
	switch c {
	case CategoryAPIReference, CategoryPolicy, CategoryTroubleshooting, CategoryGeneric:
		return true
	}
	return false
}

// ParseCategory parses a category label string.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}

// Document is the raw input to the chunker: text plus source metadata.
type Document struct {
	// Path is the origin path of the document (used for title fallback).
	Path string
	// DeclaredCategory is an optional category declared by the source.
	// If it parses to a valid Category the classifier is skipped.
	DeclaredCategory string
	// Text is the raw document text.
	Text string
}

// Chunk is a contiguous span of a document's text.
// Text is always exactly the source text between Start and End, so
// concatenating chunks minus overlap reconstructs the original document.
type Chunk struct {
	// Index is the chunk position within the document (starts at 0).
	Index int
	// Category is the label inherited from the selector.
	Category Category
	// Section is the heading text governing this chunk, if any.
	Section string
	// Start is the byte offset of the span start in the source text.
	Start int
	// End is the byte offset one past the span end in the source text.
	End int
	// Text is the span content: source[Start:End].
	Text string
}

// Policy is the splitting configuration for one category.
// Sizes are measured in runes, consistent with embedding token estimation.
type Policy struct {
	// WindowSize is the target chunk size in runes.
	WindowSize int `json:"window_size"`
	// Overlap is the number of runes shared between adjacent chunks.
	Overlap int `json:"overlap"`
}

// DefaultPolicies returns the per-category splitting policies.
func DefaultPolicies() map[Category]Policy {
	return map[Category]Policy{
		CategoryAPIReference:    {WindowSize: 800, Overlap: 100},
		CategoryPolicy:          {WindowSize: 1200, Overlap: 300},
		CategoryTroubleshooting: {WindowSize: 900, Overlap: 200},
		CategoryGeneric:         {WindowSize: 800, Overlap: 150},
	}
}

// Reassemble reconstructs the original document text from its chunks by
// dropping the leading overlap of every chunk after the first.
func Reassemble(chunks []Chunk) string {
	if len(chunks) == 0 {
		return ""
	}

	out := chunks[0].Text
	for i := 1; i < len(chunks); i++ {
		overlap := chunks[i-1].End - chunks[i].Start
		if overlap < 0 {
			overlap = 0
		}
		if overlap > len(chunks[i].Text) {
			overlap = len(chunks[i].Text)
		}
		out += chunks[i].Text[overlap:]
	}
	return out
}
