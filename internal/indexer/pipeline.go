package indexer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ReesavGupta/RAG-playground/internal/chunking"
	"github.com/ReesavGupta/RAG-playground/internal/contextutil"
	"github.com/ReesavGupta/RAG-playground/internal/corpus"
	"github.com/ReesavGupta/RAG-playground/internal/llm"
	"github.com/ReesavGupta/RAG-playground/internal/storage"
	"github.com/ReesavGupta/RAG-playground/internal/vectorstore"
)

// Pipeline orchestrates the indexing of corpus files into SQLite and Qdrant.
// Each file is categorized, chunked with the category's policy, embedded,
// and stored in both backends.
type Pipeline struct {
	corpusManager *corpus.Manager
	documentRepo  storage.DocumentStore
	chunkRepo     storage.ChunkStore
	embedder      *llm.EmbeddingsClient
	vectorStore   vectorstore.VectorStore
	collection    string
	chunker       *chunking.AdaptiveChunker
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	corpusManager *corpus.Manager,
	documentRepo storage.DocumentStore,
	chunkRepo storage.ChunkStore,
	embedder *llm.EmbeddingsClient,
	vectorStore vectorstore.VectorStore,
	collection string,
) *Pipeline {
	return &Pipeline{
		corpusManager: corpusManager,
		documentRepo:  documentRepo,
		chunkRepo:     chunkRepo,
		embedder:      embedder,
		vectorStore:   vectorStore,
		collection:    collection,
		chunker:       chunking.NewAdaptiveChunker(),
	}
}

// IndexDocument indexes a single corpus file.
// It checks if the file has changed (via hash), classifies and chunks it,
// generates embeddings, and stores chunks in both SQLite and Qdrant.
func (p *Pipeline) IndexDocument(ctx context.Context, sourceID int, relPath string) error {
	logger := contextutil.LoggerFromContext(ctx)

	absPath := p.corpusManager.AbsPath(sourceID, relPath)
	if absPath == "" {
		return fmt.Errorf("failed to resolve absolute path for source %d, relPath %s", sourceID, relPath)
	}

	source, err := p.corpusManager.SourceByID(sourceID)
	if err != nil {
		return fmt.Errorf("failed to resolve source: %w", err)
	}

	content, err := corpus.Load(absPath)
	if err != nil {
		return fmt.Errorf("failed to load file %s: %w", absPath, err)
	}

	hash := sha256.Sum256([]byte(content))
	hashHex := fmt.Sprintf("%x", hash)

	existing, err := p.documentRepo.GetBySourceAndPath(ctx, sourceID, relPath)
	if err != nil && err != storage.ErrNotFound {
		return fmt.Errorf("failed to check existing document: %w", err)
	}

	if existing != nil && existing.Hash == hashHex {
		logger.DebugContext(ctx, "skipping unchanged file", "rel_path", relPath, "hash", hashHex)
		return nil
	}

	filename := pathBase(relPath)
	title := chunking.ExtractTitle(content, filename)

	chunks, category := p.chunker.ChunkDocument(chunking.Document{
		Path: relPath,
		Text: content,
	})

	docID := uuid.New().String()
	if existing != nil {
		docID = existing.ID
	}

	doc := &storage.DocumentRecord{
		ID:        docID,
		SourceID:  sourceID,
		RelPath:   relPath,
		Folder:    pathFolder(relPath),
		Title:     title,
		Category:  string(category),
		UpdatedAt: time.Now().UTC(),
		Hash:      hashHex,
	}
	if err := p.documentRepo.Upsert(ctx, doc); err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	if existing != nil {
		if err := p.removeOldChunks(ctx, docID); err != nil {
			return err
		}
	}

	if len(chunks) == 0 {
		logger.WarnContext(ctx, "no chunks generated", "rel_path", relPath)
		return nil
	}

	chunkTexts := make([]string, len(chunks))
	for i, chunk := range chunks {
		chunkTexts[i] = chunk.Text
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, chunkTexts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
	}

	chunkRecords := make([]*storage.ChunkRecord, len(chunks))
	points := make([]vectorstore.Point, len(chunks))

	for i, chunk := range chunks {
		chunkID := uuid.New().String()

		chunkRecords[i] = &storage.ChunkRecord{
			ID:          chunkID,
			DocumentID:  docID,
			ChunkIndex:  chunk.Index,
			Category:    string(chunk.Category),
			Section:     chunk.Section,
			StartOffset: chunk.Start,
			EndOffset:   chunk.End,
			Text:        chunk.Text,
		}

		points[i] = vectorstore.Point{
			ID:  chunkID,
			Vec: embeddings[i],
			Meta: map[string]any{
				"source_id":   sourceID,
				"source_name": source.Name,
				"document_id": docID,
				"rel_path":    relPath,
				"folder":      doc.Folder,
				"category":    string(chunk.Category),
				"section":     chunk.Section,
				"chunk_index": chunk.Index,
				"title":       title,
			},
		}
	}

	for _, chunkRecord := range chunkRecords {
		if err := p.chunkRepo.Insert(ctx, chunkRecord); err != nil {
			return fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}

	logger.InfoContext(ctx, "indexed document",
		"rel_path", relPath, "category", string(category), "chunks", len(chunks), "title", title)
	return nil
}

// removeOldChunks deletes a document's previous chunks from both backends.
func (p *Pipeline) removeOldChunks(ctx context.Context, docID string) error {
	logger := contextutil.LoggerFromContext(ctx)

	oldChunkIDs, err := p.chunkRepo.ListIDsByDocument(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to list old chunk IDs: %w", err)
	}
	if len(oldChunkIDs) == 0 {
		return nil
	}

	if err := p.vectorStore.Delete(ctx, p.collection, oldChunkIDs); err != nil {
		// New chunks will overwrite stale points, so keep going.
		logger.WarnContext(ctx, "failed to delete old chunks from Qdrant", "error", err, "count", len(oldChunkIDs))
	}

	if err := p.chunkRepo.DeleteByDocument(ctx, docID); err != nil {
		return fmt.Errorf("failed to delete old chunks from SQLite: %w", err)
	}
	return nil
}

// IndexAll scans all corpus roots and indexes every indexable file.
// Errors for individual files are logged but don't stop the indexing process.
func (p *Pipeline) IndexAll(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	scannedFiles, err := p.corpusManager.ScanAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan corpus roots: %w", err)
	}

	logger.InfoContext(ctx, "starting indexing", "total_files", len(scannedFiles))

	var successCount, errorCount int

	for _, file := range scannedFiles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := p.IndexDocument(ctx, file.SourceID, file.RelPath); err != nil {
			errorCount++
			logger.ErrorContext(ctx, "failed to index file", "rel_path", file.RelPath, "error", err)
			continue
		}
		successCount++
	}

	logger.InfoContext(ctx, "indexing completed",
		"total_files", len(scannedFiles), "success", successCount, "errors", errorCount)

	if errorCount > 0 {
		return fmt.Errorf("indexing completed with %d errors", errorCount)
	}
	return nil
}

// pathBase returns the filename component of a forward-slash relative path.
func pathBase(relPath string) string {
	for i := len(relPath) - 1; i >= 0; i-- {
		if relPath[i] == '/' {
			return relPath[i+1:]
		}
	}
	return relPath
}

// pathFolder returns the directory component of a forward-slash relative
// path, "" for root-level files.
func pathFolder(relPath string) string {
	for i := len(relPath) - 1; i >= 0; i-- {
		if relPath[i] == '/' {
			return relPath[:i]
		}
	}
	return ""
}
