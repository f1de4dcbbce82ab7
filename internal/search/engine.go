package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/ReesavGupta/RAG-playground/internal/contextutil"
	"github.com/ReesavGupta/RAG-playground/internal/llm"
	"github.com/ReesavGupta/RAG-playground/internal/service"
	"github.com/ReesavGupta/RAG-playground/internal/storage"
	"github.com/ReesavGupta/RAG-playground/internal/vectorstore"
)

const (
	defaultK = 5
	maxK     = 20
)

// Engine provides semantic retrieval over the indexed corpus.
type Engine interface {
	// Search retrieves the most relevant chunks for a query.
	Search(ctx context.Context, req SearchRequest) (SearchResponse, error)
	// Evaluate runs a set of labeled queries and reports retrieval quality.
	Evaluate(ctx context.Context, queries []EvalQuery, k int) (EvalReport, error)
}

// searchEngine implements the Engine interface.
type searchEngine struct {
	embedder    *llm.EmbeddingsClient
	vectorStore vectorstore.VectorStore
	collection  string
	chunkRepo   storage.ChunkStore
	sourceRepo  storage.SourceStore
}

// NewEngine creates a new search engine.
func NewEngine(
	embedder *llm.EmbeddingsClient,
	vectorStore vectorstore.VectorStore,
	collection string,
	chunkRepo storage.ChunkStore,
	sourceRepo storage.SourceStore,
) Engine {
	return &searchEngine{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		chunkRepo:   chunkRepo,
		sourceRepo:  sourceRepo,
	}
}

// Search retrieves the most relevant chunks for a query.
func (e *searchEngine) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	logger.InfoContext(ctx, "search started",
		"query", req.Query,
		"sources", req.Sources,
		"categories", req.Categories,
		"k", req.K,
	)

	embeddings, err := e.embedder.EmbedTexts(ctx, []string{req.Query})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		return SearchResponse{}, service.WrapError(service.ErrExternalService, "failed to embed query")
	}
	if len(embeddings) == 0 {
		return SearchResponse{}, fmt.Errorf("no embedding returned for query")
	}
	queryVector := embeddings[0]

	sourceIDs, err := e.resolveSourceIDs(ctx, req.Sources)
	if err != nil {
		return SearchResponse{}, err
	}

	k := req.K
	if k == 0 {
		k = defaultK
	}
	if k > maxK {
		k = maxK
	}

	// Categories multiply the per-source searches; an empty list means one
	// unfiltered search per source.
	categories := req.Categories
	if len(categories) == 0 {
		categories = []string{""}
	}

	var combined []vectorstore.SearchResult
	for _, sourceID := range sourceIDs {
		for _, category := range categories {
			filters := map[string]any{"source_id": sourceID}
			if category != "" {
				filters["category"] = category
			}

			results, err := e.vectorStore.Search(ctx, e.collection, queryVector, k, filters)
			if err != nil {
				logger.ErrorContext(ctx, "failed to search vector store",
					"source_id", sourceID, "category", category, "error", err)
				continue
			}
			combined = append(combined, results...)
		}
	}

	seen := make(map[string]bool, len(combined))
	deduplicated := make([]vectorstore.SearchResult, 0, len(combined))
	for _, result := range combined {
		if !seen[result.PointID] {
			seen[result.PointID] = true
			deduplicated = append(deduplicated, result)
		}
	}

	hits := e.hydrate(ctx, deduplicated)

	// Blend a lexical overlap score into the vector score before ranking.
	for i := range hits {
		hits[i].ScoreLexical = lexicalScore(req.Query, hits[i].Text, hits[i].Section)
		hits[i].ScoreFinal = hits[i].ScoreVector + hits[i].ScoreLexical
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].ScoreFinal > hits[j].ScoreFinal
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	for i := range hits {
		hits[i].Rank = i + 1
	}

	logger.InfoContext(ctx, "search completed", "results", len(hits), "k_requested", k)

	return SearchResponse{Results: hits}, nil
}

// resolveSourceIDs maps requested source names to IDs, or returns all source
// IDs when no names are given. Unknown names are skipped.
func (e *searchEngine) resolveSourceIDs(ctx context.Context, names []string) ([]int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	allSources, err := e.sourceRepo.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list sources", "error", err)
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}

	if len(names) == 0 {
		ids := make([]int, 0, len(allSources))
		for _, source := range allSources {
			ids = append(ids, source.ID)
		}
		return ids, nil
	}

	byName := make(map[string]int, len(allSources))
	for _, source := range allSources {
		byName[source.Name] = source.ID
	}

	var ids []int
	for _, name := range names {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
		} else {
			logger.WarnContext(ctx, "unknown source name", "source", name)
		}
	}
	return ids, nil
}

// hydrate fills in chunk text and metadata for raw vector results. Results
// whose chunk row is missing are skipped.
func (e *searchEngine) hydrate(ctx context.Context, results []vectorstore.SearchResult) []Hit {
	logger := contextutil.LoggerFromContext(ctx)

	hits := make([]Hit, 0, len(results))
	for _, result := range results {
		chunk, err := e.chunkRepo.GetByID(ctx, result.PointID)
		if err != nil {
			logger.WarnContext(ctx, "failed to fetch chunk text", "chunk_id", result.PointID, "error", err)
			continue
		}

		sourceName, _ := result.Meta["source_name"].(string)
		relPath, _ := result.Meta["rel_path"].(string)
		title, _ := result.Meta["title"].(string)

		hits = append(hits, Hit{
			ChunkID:     chunk.ID,
			Source:      sourceName,
			RelPath:     relPath,
			Title:       title,
			Section:     chunk.Section,
			Category:    chunk.Category,
			ChunkIndex:  chunk.ChunkIndex,
			ScoreVector: result.Score,
			Text:        chunk.Text,
		})
	}
	return hits
}
