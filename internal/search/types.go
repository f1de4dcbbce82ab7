package search

// SearchRequest represents a retrieval query over the indexed corpus.
type SearchRequest struct {
	// Query is the user's search text.
	Query string `json:"query"`
	// Sources specifies which corpus sources to search. If empty, searches all sources.
	Sources []string `json:"sources,omitempty"`
	// Categories restricts results to the given category labels. If empty, searches all categories.
	Categories []string `json:"categories,omitempty"`
	// K optionally specifies the desired result count (default 5, max 20).
	K int `json:"k,omitempty"`
}

// Hit represents one retrieved chunk with scoring information.
type Hit struct {
	// ChunkID is the stable chunk identifier.
	ChunkID string `json:"chunk_id"`
	// Source is the corpus source name.
	Source string `json:"source"`
	// RelPath is the relative path to the document file.
	RelPath string `json:"rel_path"`
	// Title is the document title.
	Title string `json:"title"`
	// Section is the heading governing the chunk, if any.
	Section string `json:"section"`
	// Category is the chunk's category label.
	Category string `json:"category"`
	// ChunkIndex is the chunk index within the document.
	ChunkIndex int `json:"chunk_index"`
	// ScoreVector is the vector similarity score.
	ScoreVector float32 `json:"score_vector"`
	// ScoreLexical is the lexical overlap score blended into the final score.
	ScoreLexical float32 `json:"score_lexical"`
	// ScoreFinal is the combined final score used for ranking.
	ScoreFinal float32 `json:"score_final"`
	// Text is the chunk text.
	Text string `json:"text"`
	// Rank is the 1-based rank in the result list.
	Rank int `json:"rank"`
}

// SearchResponse represents the response to a search request.
type SearchResponse struct {
	// Results are the retrieved chunks in rank order.
	Results []Hit `json:"results"`
}
