package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/ReesavGupta/RAG-playground/internal/config"
	"github.com/ReesavGupta/RAG-playground/internal/corpus"
	"github.com/ReesavGupta/RAG-playground/internal/http"
	"github.com/ReesavGupta/RAG-playground/internal/indexer"
	"github.com/ReesavGupta/RAG-playground/internal/llm"
	"github.com/ReesavGupta/RAG-playground/internal/search"
	"github.com/ReesavGupta/RAG-playground/internal/storage"
	"github.com/ReesavGupta/RAG-playground/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API indexes a document corpus with category-adaptive chunking and
// serves semantic search over the result.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: RAG Playground API
//   description: |
//     Adaptive chunking and retrieval API. Documents are classified into
//     categories (api-reference, policy, troubleshooting, generic), chunked
//     with a per-category policy, and indexed for vector search.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	sourceRepo := storage.NewSourceRepo(db)
	documentRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)

	ctx := context.Background()

	// Register corpus roots as sources
	roots := make([]corpus.Root, 0, len(cfg.CorpusRoots))
	for _, root := range cfg.CorpusRoots {
		roots = append(roots, corpus.Root{Name: root.Name, Path: root.Path})
	}
	corpusManager, err := corpus.NewManager(ctx, sourceRepo, roots)
	if err != nil {
		log.Fatalf("Failed to initialize corpus manager: %v", err)
	}
	slog.Info("Corpus manager initialized", "sources", corpusManager.Names())

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	// Create indexing pipeline
	pipeline := indexer.NewPipeline(
		corpusManager,
		documentRepo,
		chunkRepo,
		embedder,
		vectorStore,
		cfg.QdrantCollection,
	)

	// Create search engine
	searchEngine := search.NewEngine(
		embedder,
		vectorStore,
		cfg.QdrantCollection,
		chunkRepo,
		sourceRepo,
	)
	slog.Info("Search engine initialized")

	// Create router with dependencies
	deps := &http.Deps{
		SearchEngine:       searchEngine,
		SourceRepo:         sourceRepo,
		DocumentRepo:       documentRepo,
		Pipeline:           pipeline,
		VectorStore:        vectorStore,
		Collection:         cfg.QdrantCollection,
		EmbeddingModelName: cfg.EmbeddingModelName,
	}
	router := http.NewRouter(deps)

	// Start indexing in background after router is ready
	go func() {
		indexCtx := context.Background()
		slog.Info("Starting background indexing of corpus roots")
		if err := pipeline.IndexAll(indexCtx); err != nil {
			slog.Error("Indexing completed with errors", "error", err)
		} else {
			slog.Info("Indexing completed successfully")
		}
	}()

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
