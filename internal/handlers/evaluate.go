package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ReesavGupta/RAG-playground/internal/chunking"
	"github.com/ReesavGupta/RAG-playground/internal/contextutil"
	"github.com/ReesavGupta/RAG-playground/internal/search"
)

// EvaluateHandler handles HTTP requests for retrieval quality evaluation.
type EvaluateHandler struct {
	engine search.Engine
}

// NewEvaluateHandler creates a new EvaluateHandler.
func NewEvaluateHandler(engine search.Engine) *EvaluateHandler {
	return &EvaluateHandler{engine: engine}
}

// EvaluateRequest represents the HTTP request payload for evaluation runs.
//
// swagger:model EvaluateRequest
type EvaluateRequest struct {
	// Queries are the labeled queries to run.
	Queries []search.EvalQuery `json:"queries"`
	// K is the result count per query (default 5).
	K int `json:"k,omitempty"`
}

// ServeHTTP handles HTTP requests for evaluation runs.
//
// Run a set of labeled queries against the index and report success rate
// and category relevance.
//
// swagger:route POST /api/evaluate evaluateRetrieval
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Aggregate and per-query retrieval quality
//	'400':
//	  description: Bad request (no queries or unknown expected category)
//	'502':
//	  description: Embedding service unavailable
//	'503':
//	  description: Vector store unavailable
func (h *EvaluateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Queries) == 0 {
		writeError(ctx, w, http.StatusBadRequest, "At least one query is required")
		return
	}
	for _, query := range req.Queries {
		if query.Query == "" {
			writeError(ctx, w, http.StatusBadRequest, "Every query needs non-empty text")
			return
		}
		for _, category := range query.ExpectedCategories {
			if _, err := chunking.ParseCategory(category); err != nil {
				writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Invalid category: %s", category))
				return
			}
		}
	}

	report, err := h.engine.Evaluate(ctx, req.Queries, req.K)
	if err != nil {
		writeEngineError(ctx, w, err, "Failed to evaluate queries")
		return
	}

	writeJSON(ctx, w, http.StatusOK, report)
}
