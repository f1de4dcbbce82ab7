package chunking

// AdaptiveChunker classifies a document and splits it with the policy mapped
// to its category. It is a pure transformation over in-memory text: all I/O
// (loading, embedding, storage) happens in collaborator packages.
type AdaptiveChunker struct {
	policies map[Category]Policy
}

// NewAdaptiveChunker creates a chunker with the default per-category policies.
func NewAdaptiveChunker() *AdaptiveChunker {
	return &AdaptiveChunker{policies: DefaultPolicies()}
}

// NewAdaptiveChunkerWithPolicies creates a chunker with the given policy
// overrides. Categories missing from the map keep their default policy.
func NewAdaptiveChunkerWithPolicies(overrides map[Category]Policy) *AdaptiveChunker {
	policies := DefaultPolicies()
	for cat, pol := range overrides {
		if !cat.Valid() {
			continue
		}
		policies[cat] = pol
	}
	return &AdaptiveChunker{policies: policies}
}

// PolicyFor returns the splitting policy for a category. Unknown categories
// get the generic policy.
func (c *AdaptiveChunker) PolicyFor(cat Category) Policy {
	if pol, ok := c.policies[cat]; ok {
		return pol
	}
	return c.policies[CategoryGeneric]
}

// Policies returns a copy of the per-category policy table.
func (c *AdaptiveChunker) Policies() map[Category]Policy {
	out := make(map[Category]Policy, len(c.policies))
	for cat, pol := range c.policies {
		out[cat] = pol
	}
	return out
}

// ChunkDocument classifies the document and splits it into chunks.
// A valid DeclaredCategory skips classification. Empty text yields the
// generic category and zero chunks; there is no error path.
func (c *AdaptiveChunker) ChunkDocument(doc Document) ([]Chunk, Category) {
	cat := CategoryGeneric
	if declared, err := ParseCategory(doc.DeclaredCategory); err == nil {
		cat = declared
	} else {
		cat = Classify(doc.Text)
	}
	return c.ChunkText(doc.Text, cat), cat
}

// ChunkText splits text with the policy for the given category. The returned
// chunks are ordered by offset and satisfy the reconstruction invariant:
// Reassemble(chunks) == text.
func (c *AdaptiveChunker) ChunkText(text string, cat Category) []Chunk {
	if len(text) == 0 {
		return []Chunk{}
	}
	if !cat.Valid() {
		cat = CategoryGeneric
	}

	pol := c.PolicyFor(cat)
	l := scanLayout(text)

	var spans []span
	switch cat {
	case CategoryPolicy:
		spans = splitSections(text, l, pol)
	case CategoryAPIReference, CategoryTroubleshooting:
		spans = splitCodeAware(text, l, pol)
	default:
		spans = splitWindow(text, 0, len(text), pol)
	}

	chunks := make([]Chunk, 0, len(spans))
	for i, s := range spans {
		chunks = append(chunks, Chunk{
			Index:    i,
			Category: cat,
			Section:  l.sectionFor(s.Start),
			Start:    s.Start,
			End:      s.End,
			Text:     text[s.Start:s.End],
		})
	}
	return chunks
}
