package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ReesavGupta/RAG-playground/internal/chunking"
	"github.com/ReesavGupta/RAG-playground/internal/contextutil"
	"github.com/ReesavGupta/RAG-playground/internal/search"
	"github.com/ReesavGupta/RAG-playground/internal/storage"
)

// SearchHandler handles HTTP requests for corpus search.
type SearchHandler struct {
	engine     search.Engine
	sourceRepo storage.SourceStore
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(engine search.Engine, sourceRepo storage.SourceStore) *SearchHandler {
	return &SearchHandler{
		engine:     engine,
		sourceRepo: sourceRepo,
	}
}

// SearchRequest represents the HTTP request payload for search queries.
// This mirrors search.SearchRequest but is defined here for HTTP layer separation.
//
// swagger:model SearchRequest
type SearchRequest struct {
	Query      string   `json:"query"`
	Sources    []string `json:"sources,omitempty"`
	Categories []string `json:"categories,omitempty"`
	K          int      `json:"k,omitempty"`
}

// ServeHTTP handles HTTP requests for search queries.
//
// Search the indexed corpus for chunks relevant to a query, optionally
// filtered by source and category.
//
// swagger:route POST /api/search searchCorpus
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Ranked results with scores and chunk text
//	'400':
//	  description: Bad request (empty query, unknown source or category)
//	'502':
//	  description: Embedding service unavailable
//	'503':
//	  description: Vector store unavailable
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Query == "" {
		logger.WarnContext(ctx, "empty query in request")
		writeError(ctx, w, http.StatusBadRequest, "Query is required")
		return
	}

	if req.K < 0 {
		req.K = 0
	}

	for _, category := range req.Categories {
		if _, err := chunking.ParseCategory(category); err != nil {
			logger.WarnContext(ctx, "invalid category", "category", category)
			writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Invalid category: %s", category))
			return
		}
	}

	if len(req.Sources) > 0 {
		allSources, err := h.sourceRepo.ListAll(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "failed to list sources for validation", "error", err)
			writeError(ctx, w, http.StatusInternalServerError, "Failed to validate sources")
			return
		}

		validSources := make(map[string]bool, len(allSources))
		for _, source := range allSources {
			validSources[source.Name] = true
		}
		for _, name := range req.Sources {
			if !validSources[name] {
				logger.WarnContext(ctx, "invalid source name", "source", name)
				writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Invalid source name: %s", name))
				return
			}
		}
	}

	resp, err := h.engine.Search(ctx, search.SearchRequest{
		Query:      req.Query,
		Sources:    req.Sources,
		Categories: req.Categories,
		K:          req.K,
	})
	if err != nil {
		writeEngineError(ctx, w, err, "Failed to process search query")
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}
