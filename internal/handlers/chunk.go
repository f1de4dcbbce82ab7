package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ReesavGupta/RAG-playground/internal/chunking"
	"github.com/ReesavGupta/RAG-playground/internal/contextutil"
)

// ChunkHandler handles HTTP requests for chunk previews. It runs the
// classifier and chunker on submitted text without touching the index.
type ChunkHandler struct {
	chunker *chunking.AdaptiveChunker
}

// NewChunkHandler creates a new ChunkHandler.
func NewChunkHandler() *ChunkHandler {
	return &ChunkHandler{chunker: chunking.NewAdaptiveChunker()}
}

// ChunkRequest represents the HTTP request payload for chunk previews.
//
// swagger:model ChunkRequest
type ChunkRequest struct {
	// Text is the document text to classify and chunk.
	Text string `json:"text"`
	// Category optionally forces a category instead of running the selector.
	Category string `json:"category,omitempty"`
	// Path is an optional origin path used for title extraction.
	Path string `json:"path,omitempty"`
}

// ChunkPreview is one chunk of the preview response.
type ChunkPreview struct {
	Index   int    `json:"index"`
	Section string `json:"section,omitempty"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Text    string `json:"text"`
}

// ChunkResponse represents the HTTP response payload for chunk previews.
//
// swagger:model ChunkResponse
type ChunkResponse struct {
	// Category is the label the selector assigned (or the forced one).
	Category string `json:"category"`
	// Policy is the window/overlap policy used, in runes.
	Policy chunking.Policy `json:"policy"`
	// Signals are the structural signals the selector saw.
	Signals chunking.Signals `json:"signals"`
	// Chunks are the produced chunks in order.
	Chunks []ChunkPreview `json:"chunks"`
}

// ServeHTTP handles HTTP requests for chunk previews.
//
// Classify a document and return the chunks its category's policy produces.
// The index is not modified.
//
// swagger:route POST /api/chunk previewChunks
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Category, signals, policy, and chunk spans
//	'400':
//	  description: Bad request (invalid body or unknown category)
func (h *ChunkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Category != "" {
		if _, err := chunking.ParseCategory(req.Category); err != nil {
			logger.WarnContext(ctx, "invalid category", "category", req.Category)
			writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Invalid category: %s", req.Category))
			return
		}
	}

	chunks, category := h.chunker.ChunkDocument(chunking.Document{
		Path:             req.Path,
		DeclaredCategory: req.Category,
		Text:             req.Text,
	})

	previews := make([]ChunkPreview, len(chunks))
	for i, chunk := range chunks {
		previews[i] = ChunkPreview{
			Index:   chunk.Index,
			Section: chunk.Section,
			Start:   chunk.Start,
			End:     chunk.End,
			Text:    chunk.Text,
		}
	}

	writeJSON(ctx, w, http.StatusOK, ChunkResponse{
		Category: string(category),
		Policy:   h.chunker.PolicyFor(category),
		Signals:  chunking.Analyze(req.Text),
		Chunks:   previews,
	})
}
