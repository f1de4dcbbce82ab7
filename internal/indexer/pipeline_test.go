package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ReesavGupta/RAG-playground/internal/corpus"
	"github.com/ReesavGupta/RAG-playground/internal/llm"
	"github.com/ReesavGupta/RAG-playground/internal/storage"
	storage_mocks "github.com/ReesavGupta/RAG-playground/internal/storage/mocks"
	"github.com/ReesavGupta/RAG-playground/internal/vectorstore"
	vectorstore_mocks "github.com/ReesavGupta/RAG-playground/internal/vectorstore/mocks"

	"go.uber.org/mock/gomock"
)

// newEmbeddingServer returns a test server speaking the OpenAI embeddings
// shape, echoing one fixed-size vector per input.
func newEmbeddingServer(t *testing.T, size int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode embeddings request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		type data struct {
			Embedding []float64 `json:"embedding"`
		}
		resp := struct {
			Data []data `json:"data"`
		}{}
		for range req.Input {
			vec := make([]float64, size)
			for i := range vec {
				vec[i] = 0.1
			}
			resp.Data = append(resp.Data, data{Embedding: vec})
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode embeddings response: %v", err)
		}
	}))
}

func newTestCorpusManager(t *testing.T, ctrl *gomock.Controller, rootPath string) *corpus.Manager {
	t.Helper()

	mockSourceRepo := storage_mocks.NewMockSourceStore(ctrl)
	mockSourceRepo.EXPECT().
		GetOrCreateByName(gomock.Any(), "docs", rootPath).
		Return(storage.SourceRecord{ID: 1, Name: "docs", RootPath: rootPath}, nil)

	manager, err := corpus.NewManager(context.Background(), mockSourceRepo, []corpus.Root{{Name: "docs", Path: rootPath}})
	if err != nil {
		t.Fatalf("corpus.NewManager() error = %v", err)
	}
	return manager
}

func TestNewPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pipeline := NewPipeline(
		newTestCorpusManager(t, ctrl, t.TempDir()),
		storage_mocks.NewMockDocumentStore(ctrl),
		storage_mocks.NewMockChunkStore(ctrl),
		&llm.EmbeddingsClient{ExpectedSize: 768},
		vectorstore_mocks.NewMockVectorStore(ctrl),
		"test-collection",
	)

	if pipeline == nil {
		t.Fatal("NewPipeline() returned nil")
	}
	if pipeline.chunker == nil {
		t.Error("NewPipeline() chunker should not be nil")
	}
	if pipeline.collection != "test-collection" {
		t.Errorf("NewPipeline() collection = %v, want test-collection", pipeline.collection)
	}
}

func TestPipeline_IndexDocument_NewFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	content := "# Setup Guide\n\nInstall the binary and run it.\n"
	if err := os.WriteFile(filepath.Join(root, "guide.md"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	server := newEmbeddingServer(t, 4)
	defer server.Close()
	embedder := llm.NewEmbeddingsClient(server.URL, "", "test-model", 4)

	mockDocumentRepo := storage_mocks.NewMockDocumentStore(ctrl)
	mockChunkRepo := storage_mocks.NewMockChunkStore(ctrl)
	mockVectorStore := vectorstore_mocks.NewMockVectorStore(ctrl)

	mockDocumentRepo.EXPECT().
		GetBySourceAndPath(gomock.Any(), 1, "guide.md").
		Return(nil, storage.ErrNotFound)

	var upserted *storage.DocumentRecord
	mockDocumentRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, doc *storage.DocumentRecord) error {
			upserted = doc
			return nil
		})

	var inserted []*storage.ChunkRecord
	mockChunkRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, chunk *storage.ChunkRecord) error {
			inserted = append(inserted, chunk)
			return nil
		}).
		AnyTimes()

	var points []vectorstore.Point
	mockVectorStore.EXPECT().
		Upsert(gomock.Any(), "test-collection", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, pts []vectorstore.Point) error {
			points = pts
			return nil
		})

	pipeline := NewPipeline(
		newTestCorpusManager(t, ctrl, root),
		mockDocumentRepo,
		mockChunkRepo,
		embedder,
		mockVectorStore,
		"test-collection",
	)

	if err := pipeline.IndexDocument(context.Background(), 1, "guide.md"); err != nil {
		t.Fatalf("IndexDocument() error = %v", err)
	}

	if upserted == nil {
		t.Fatal("document was not upserted")
	}
	if upserted.Title != "Setup Guide" {
		t.Errorf("document title = %q, want Setup Guide", upserted.Title)
	}
	if upserted.Category == "" {
		t.Error("document category should be set")
	}
	wantHash := fmt.Sprintf("%x", sha256.Sum256([]byte(content)))
	if upserted.Hash != wantHash {
		t.Errorf("document hash = %q, want %q", upserted.Hash, wantHash)
	}

	if len(inserted) == 0 {
		t.Fatal("no chunks inserted")
	}
	if len(points) != len(inserted) {
		t.Errorf("points = %d, chunks = %d, want equal", len(points), len(inserted))
	}
	for i, chunk := range inserted {
		if chunk.DocumentID != upserted.ID {
			t.Errorf("chunk %d document ID = %q, want %q", i, chunk.DocumentID, upserted.ID)
		}
		if chunk.Category != upserted.Category {
			t.Errorf("chunk %d category = %q, want %q", i, chunk.Category, upserted.Category)
		}
	}
	for i, point := range points {
		if len(point.Vec) != 4 {
			t.Errorf("point %d vector size = %d, want 4", i, len(point.Vec))
		}
		if point.Meta["source_name"] != "docs" {
			t.Errorf("point %d source_name = %v, want docs", i, point.Meta["source_name"])
		}
		if point.Meta["category"] != upserted.Category {
			t.Errorf("point %d category = %v, want %q", i, point.Meta["category"], upserted.Category)
		}
	}
}

func TestPipeline_IndexDocument_UnchangedSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	content := "# Guide\n\nNothing changed here.\n"
	if err := os.WriteFile(filepath.Join(root, "guide.md"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	mockDocumentRepo := storage_mocks.NewMockDocumentStore(ctrl)
	mockChunkRepo := storage_mocks.NewMockChunkStore(ctrl)
	mockVectorStore := vectorstore_mocks.NewMockVectorStore(ctrl)

	hash := fmt.Sprintf("%x", sha256.Sum256([]byte(content)))
	mockDocumentRepo.EXPECT().
		GetBySourceAndPath(gomock.Any(), 1, "guide.md").
		Return(&storage.DocumentRecord{ID: "doc-1", SourceID: 1, RelPath: "guide.md", Hash: hash}, nil)

	// No Upsert, Insert, or vector calls expected for an unchanged file.

	pipeline := NewPipeline(
		newTestCorpusManager(t, ctrl, root),
		mockDocumentRepo,
		mockChunkRepo,
		&llm.EmbeddingsClient{ExpectedSize: 4},
		mockVectorStore,
		"test-collection",
	)

	if err := pipeline.IndexDocument(context.Background(), 1, "guide.md"); err != nil {
		t.Fatalf("IndexDocument() error = %v", err)
	}
}

func TestPipeline_IndexDocument_ReindexDeletesOldChunks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	content := "# Guide\n\nUpdated content.\n"
	if err := os.WriteFile(filepath.Join(root, "guide.md"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	server := newEmbeddingServer(t, 4)
	defer server.Close()
	embedder := llm.NewEmbeddingsClient(server.URL, "", "test-model", 4)

	mockDocumentRepo := storage_mocks.NewMockDocumentStore(ctrl)
	mockChunkRepo := storage_mocks.NewMockChunkStore(ctrl)
	mockVectorStore := vectorstore_mocks.NewMockVectorStore(ctrl)

	mockDocumentRepo.EXPECT().
		GetBySourceAndPath(gomock.Any(), 1, "guide.md").
		Return(&storage.DocumentRecord{ID: "doc-1", SourceID: 1, RelPath: "guide.md", Hash: "stale"}, nil)

	mockDocumentRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, doc *storage.DocumentRecord) error {
			if doc.ID != "doc-1" {
				t.Errorf("re-index should keep document ID, got %q", doc.ID)
			}
			return nil
		})

	mockChunkRepo.EXPECT().
		ListIDsByDocument(gomock.Any(), "doc-1").
		Return([]string{"old-1", "old-2"}, nil)
	mockVectorStore.EXPECT().
		Delete(gomock.Any(), "test-collection", []string{"old-1", "old-2"}).
		Return(nil)
	mockChunkRepo.EXPECT().
		DeleteByDocument(gomock.Any(), "doc-1").
		Return(nil)

	mockChunkRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockVectorStore.EXPECT().Upsert(gomock.Any(), "test-collection", gomock.Any()).Return(nil)

	pipeline := NewPipeline(
		newTestCorpusManager(t, ctrl, root),
		mockDocumentRepo,
		mockChunkRepo,
		embedder,
		mockVectorStore,
		"test-collection",
	)

	if err := pipeline.IndexDocument(context.Background(), 1, "guide.md"); err != nil {
		t.Fatalf("IndexDocument() error = %v", err)
	}
}

func TestPipeline_IndexAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	for _, name := range []string{"a.md", "b.md"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("# "+name+"\n\nBody.\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	server := newEmbeddingServer(t, 4)
	defer server.Close()
	embedder := llm.NewEmbeddingsClient(server.URL, "", "test-model", 4)

	mockDocumentRepo := storage_mocks.NewMockDocumentStore(ctrl)
	mockChunkRepo := storage_mocks.NewMockChunkStore(ctrl)
	mockVectorStore := vectorstore_mocks.NewMockVectorStore(ctrl)

	mockDocumentRepo.EXPECT().
		GetBySourceAndPath(gomock.Any(), 1, gomock.Any()).
		Return(nil, storage.ErrNotFound).
		Times(2)
	mockDocumentRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	mockChunkRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockVectorStore.EXPECT().Upsert(gomock.Any(), "test-collection", gomock.Any()).Return(nil).Times(2)

	pipeline := NewPipeline(
		newTestCorpusManager(t, ctrl, root),
		mockDocumentRepo,
		mockChunkRepo,
		embedder,
		mockVectorStore,
		"test-collection",
	)

	if err := pipeline.IndexAll(context.Background()); err != nil {
		t.Fatalf("IndexAll() error = %v", err)
	}
}
