package handlers

import (
	"context"
	"net/http"

	"github.com/ReesavGupta/RAG-playground/internal/contextutil"
	"github.com/ReesavGupta/RAG-playground/internal/indexer"
)

// ReindexHandler handles HTTP requests for triggering re-indexing.
type ReindexHandler struct {
	pipeline *indexer.Pipeline
}

// NewReindexHandler creates a new ReindexHandler.
func NewReindexHandler(pipeline *indexer.Pipeline) *ReindexHandler {
	return &ReindexHandler{pipeline: pipeline}
}

// ReindexResponse represents the response from the index endpoint.
type ReindexResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ServeHTTP handles HTTP requests for triggering re-indexing.
//
// Indexing runs in the background and the endpoint returns immediately.
// Unchanged documents are skipped by content hash, so repeated triggers
// are cheap.
//
// swagger:route POST /api/index triggerReindex
//
// ---
// produces:
// - application/json
// responses:
//
//	'202':
//	  description: Indexing started
func (h *ReindexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	logger.InfoContext(ctx, "re-indexing triggered via API")

	// Run in a goroutine with a background context so indexing continues
	// after the HTTP request completes.
	go func() {
		indexCtx := contextutil.WithLogger(context.Background(), logger)
		if err := h.pipeline.IndexAll(indexCtx); err != nil {
			logger.ErrorContext(indexCtx, "re-indexing completed with errors", "error", err)
			return
		}
		logger.InfoContext(indexCtx, "re-indexing completed successfully")
	}()

	writeJSON(ctx, w, http.StatusAccepted, ReindexResponse{
		Message: "Indexing started. Check server logs for progress.",
		Status:  "accepted",
	})
}
