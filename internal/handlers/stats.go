package handlers

import (
	"net/http"

	"github.com/ReesavGupta/RAG-playground/internal/chunking"
	"github.com/ReesavGupta/RAG-playground/internal/contextutil"
	"github.com/ReesavGupta/RAG-playground/internal/indexer"
	"github.com/ReesavGupta/RAG-playground/internal/vectorstore"
)

// StatsHandler handles HTTP requests for system statistics.
type StatsHandler struct {
	pipeline           *indexer.Pipeline
	chunker            *chunking.AdaptiveChunker
	vectorStore        vectorstore.VectorStore
	collection         string
	embeddingModelName string
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(pipeline *indexer.Pipeline, vectorStore vectorstore.VectorStore, collection, embeddingModelName string) *StatsHandler {
	return &StatsHandler{
		pipeline:           pipeline,
		chunker:            chunking.NewAdaptiveChunker(),
		vectorStore:        vectorStore,
		collection:         collection,
		embeddingModelName: embeddingModelName,
	}
}

// CollectionStats describes the vector store collection.
type CollectionStats struct {
	Name        string `json:"name"`
	VectorSize  int    `json:"vector_size"`
	PointsCount int    `json:"points_count"`
	Status      string `json:"status"`
}

// StatsResponse represents the response from the stats endpoint.
type StatsResponse struct {
	Coverage   *indexer.CoverageStats               `json:"coverage"`
	Strategies map[chunking.Category]chunking.Policy `json:"strategies"`
	Collection *CollectionStats                      `json:"collection,omitempty"`
}

// ServeHTTP handles HTTP requests for system statistics.
//
// Reports document and chunk counts per category, chunk token statistics,
// the index version, the per-category chunking policy table, and vector
// store collection details.
//
// swagger:route GET /api/stats indexStats
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Statistics for the current index
//	'500':
//	  description: Failed to compute statistics
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	coverage, err := h.pipeline.GetCoverageStats(ctx, h.embeddingModelName)
	if err != nil {
		logger.ErrorContext(ctx, "failed to compute coverage stats", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	resp := StatsResponse{
		Coverage:   coverage,
		Strategies: h.chunker.Policies(),
	}

	// The collection section is best effort. Coverage stats are still
	// useful when the vector store is unreachable.
	info, err := h.vectorStore.GetCollectionInfo(ctx, h.collection)
	if err != nil {
		logger.WarnContext(ctx, "failed to get collection info", "collection", h.collection, "error", err)
	} else {
		resp.Collection = &CollectionStats{
			Name:        h.collection,
			VectorSize:  info.VectorSize,
			PointsCount: info.PointsCount,
			Status:      info.Status,
		}
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}
