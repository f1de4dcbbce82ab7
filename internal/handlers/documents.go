package handlers

import (
	"net/http"
	"time"

	"github.com/ReesavGupta/RAG-playground/internal/contextutil"
	"github.com/ReesavGupta/RAG-playground/internal/storage"
)

// DocumentsHandler handles HTTP requests for listing indexed documents.
type DocumentsHandler struct {
	documentRepo storage.DocumentStore
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(documentRepo storage.DocumentStore) *DocumentsHandler {
	return &DocumentsHandler{documentRepo: documentRepo}
}

// DocumentSummary is one indexed document in the listing response.
type DocumentSummary struct {
	ID        string    `json:"id"`
	SourceID  int       `json:"source_id"`
	RelPath   string    `json:"rel_path"`
	Folder    string    `json:"folder,omitempty"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentsResponse represents the document listing response.
//
// swagger:model DocumentsResponse
type DocumentsResponse struct {
	Documents []DocumentSummary `json:"documents"`
	Total     int               `json:"total"`
}

// ServeHTTP handles HTTP requests for document listings.
//
// swagger:route GET /api/documents listDocuments
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Every indexed document with its category label
//	'500':
//	  description: Failed to list documents
func (h *DocumentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	docs, err := h.documentRepo.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list documents", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	summaries := make([]DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, DocumentSummary{
			ID:        doc.ID,
			SourceID:  doc.SourceID,
			RelPath:   doc.RelPath,
			Folder:    doc.Folder,
			Title:     doc.Title,
			Category:  doc.Category,
			UpdatedAt: doc.UpdatedAt,
		})
	}

	writeJSON(ctx, w, http.StatusOK, DocumentsResponse{
		Documents: summaries,
		Total:     len(summaries),
	})
}
