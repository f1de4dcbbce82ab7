package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/ReesavGupta/RAG-playground/internal/chunking"
)

const (
	// ChunkerVersion is the version identifier for the chunker implementation.
	// Update this when chunking logic changes significantly.
	ChunkerVersion = "v1.0"
	// TokensPerRune is an approximation for token counting (4 chars per token).
	TokensPerRune = 4.0
)

// CoverageStats contains statistics about the indexed corpus.
type CoverageStats struct {
	// DocsProcessed is the total number of documents in the index.
	DocsProcessed int `json:"docs_processed"`
	// DocsWith0Chunks is the number of documents that produced 0 chunks.
	DocsWith0Chunks int `json:"docs_with_0_chunks"`
	// DocsByCategory is the number of documents per category label.
	DocsByCategory map[string]int `json:"docs_by_category"`
	// ChunksStored is the number of chunks stored in the index.
	ChunksStored int `json:"chunks_stored"`
	// ChunksByCategory is the number of chunks per category label.
	ChunksByCategory map[string]int `json:"chunks_by_category"`
	// ChunkTokenStats contains statistics about token counts per chunk.
	ChunkTokenStats ChunkTokenStats `json:"chunk_token_stats"`
	// ChunkerVersion is the version of the chunker used.
	ChunkerVersion string `json:"chunker_version"`
	// IndexVersion is a hash identifying the index build (chunker + embedding model + policies).
	IndexVersion string `json:"index_version"`
}

// ChunkTokenStats contains statistics about token counts in chunks.
type ChunkTokenStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// GetCoverageStats computes indexing coverage statistics from the database.
func (p *Pipeline) GetCoverageStats(ctx context.Context, embeddingModelName string) (*CoverageStats, error) {
	stats := &CoverageStats{
		ChunkerVersion: ChunkerVersion,
	}

	docsByCategory, err := p.documentRepo.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents by category: %w", err)
	}
	stats.DocsByCategory = docsByCategory
	for _, count := range docsByCategory {
		stats.DocsProcessed += count
	}

	docsWith0Chunks, err := p.documentRepo.CountWithoutChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents without chunks: %w", err)
	}
	stats.DocsWith0Chunks = docsWith0Chunks

	chunks, err := p.chunkRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	stats.ChunksStored = len(chunks)

	stats.ChunksByCategory = make(map[string]int)
	tokenCounts := make([]int, 0, len(chunks))
	for _, chunk := range chunks {
		stats.ChunksByCategory[chunk.Category]++

		// Estimate tokens from rune count (approximation: ~4 chars per token).
		runeCount := utf8.RuneCountInString(chunk.Text)
		tokenCount := int(math.Round(float64(runeCount) / TokensPerRune))
		if tokenCount < 1 {
			tokenCount = 1
		}
		tokenCounts = append(tokenCounts, tokenCount)
	}
	stats.ChunkTokenStats = computeTokenStats(tokenCounts)

	stats.IndexVersion = indexVersion(embeddingModelName, p.chunker.Policies())

	return stats, nil
}

// indexVersion derives a short hash identifying the index build from the
// chunker version, embedding model, and every category's chunking policy.
func indexVersion(embeddingModelName string, policies map[chunking.Category]chunking.Policy) string {
	cats := make([]string, 0, len(policies))
	for cat := range policies {
		cats = append(cats, string(cat))
	}
	sort.Strings(cats)

	input := fmt.Sprintf("%s|%s", ChunkerVersion, embeddingModelName)
	for _, cat := range cats {
		policy := policies[chunking.Category(cat)]
		input += fmt.Sprintf("|%s=%d/%d", cat, policy.WindowSize, policy.Overlap)
	}

	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

// computeTokenStats computes min, max, mean, and p95 from token counts.
func computeTokenStats(tokenCounts []int) ChunkTokenStats {
	if len(tokenCounts) == 0 {
		return ChunkTokenStats{}
	}

	sorted := make([]int, len(tokenCounts))
	copy(sorted, tokenCounts)
	sort.Ints(sorted)

	sum := 0
	for _, count := range tokenCounts {
		sum += count
	}
	mean := float64(sum) / float64(len(tokenCounts))

	p95Index := int(math.Ceil(float64(len(sorted)) * 0.95))
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}

	return ChunkTokenStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
