package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ReesavGupta/RAG-playground/internal/handlers"
	"github.com/ReesavGupta/RAG-playground/internal/indexer"
	"github.com/ReesavGupta/RAG-playground/internal/search"
	"github.com/ReesavGupta/RAG-playground/internal/storage"
	"github.com/ReesavGupta/RAG-playground/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	SearchEngine       search.Engine
	SourceRepo         storage.SourceStore
	DocumentRepo       storage.DocumentStore
	Pipeline           *indexer.Pipeline
	VectorStore        vectorstore.VectorStore
	Collection         string
	EmbeddingModelName string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	searchHandler := handlers.NewSearchHandler(deps.SearchEngine, deps.SourceRepo)
	chunkHandler := handlers.NewChunkHandler()
	evaluateHandler := handlers.NewEvaluateHandler(deps.SearchEngine)
	statsHandler := handlers.NewStatsHandler(deps.Pipeline, deps.VectorStore, deps.Collection, deps.EmbeddingModelName)
	reindexHandler := handlers.NewReindexHandler(deps.Pipeline)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Collection)
	documentsHandler := handlers.NewDocumentsHandler(deps.DocumentRepo)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/search", searchHandler)
		r.Method(http.MethodPost, "/chunk", chunkHandler)
		r.Method(http.MethodPost, "/evaluate", evaluateHandler)
		r.Method(http.MethodPost, "/index", reindexHandler)
		r.Method(http.MethodGet, "/stats", statsHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodGet, "/documents", documentsHandler)
	})

	return r
}
