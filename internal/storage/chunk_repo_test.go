package storage

import (
	"context"
	"testing"
)

func setupChunkTest(t *testing.T) (*ChunkRepo, *DocumentRecord) {
	t.Helper()

	db, source := setupDocumentTest(t)
	doc := &DocumentRecord{SourceID: source.ID, RelPath: "doc.md", Title: "Doc", Category: "api-reference", Hash: "h"}
	if err := NewDocumentRepo(db).Upsert(context.Background(), doc); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	return NewChunkRepo(db), doc
}

func TestChunkRepo_InsertAndGet(t *testing.T) {
	repo, doc := setupChunkTest(t)
	ctx := context.Background()

	chunk := &ChunkRecord{
		ID:          "chunk-1",
		DocumentID:  doc.ID,
		ChunkIndex:  0,
		Category:    "api-reference",
		Section:     "Endpoints",
		StartOffset: 0,
		EndOffset:   42,
		Text:        "GET /things returns the things.",
	}
	if err := repo.Insert(ctx, chunk); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "chunk-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.DocumentID != doc.ID || got.Section != "Endpoints" || got.StartOffset != 0 || got.EndOffset != 42 {
		t.Errorf("GetByID() = %+v", got)
	}

	if _, err := repo.GetByID(ctx, "nope"); err != ErrNotFound {
		t.Errorf("GetByID() on missing chunk error = %v, want ErrNotFound", err)
	}
}

func TestChunkRepo_ListIDsByDocument(t *testing.T) {
	repo, doc := setupChunkTest(t)
	ctx := context.Background()

	// Insert out of index order; listing must come back ordered.
	for _, c := range []ChunkRecord{
		{ID: "c-2", DocumentID: doc.ID, ChunkIndex: 2, Category: "api-reference", Text: "third"},
		{ID: "c-0", DocumentID: doc.ID, ChunkIndex: 0, Category: "api-reference", Text: "first"},
		{ID: "c-1", DocumentID: doc.ID, ChunkIndex: 1, Category: "api-reference", Text: "second"},
	} {
		chunk := c
		if err := repo.Insert(ctx, &chunk); err != nil {
			t.Fatalf("Insert(%s) error = %v", c.ID, err)
		}
	}

	ids, err := repo.ListIDsByDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("ListIDsByDocument() error = %v", err)
	}
	want := []string{"c-0", "c-1", "c-2"}
	if len(ids) != len(want) {
		t.Fatalf("ListIDsByDocument() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestChunkRepo_DeleteByDocument(t *testing.T) {
	repo, doc := setupChunkTest(t)
	ctx := context.Background()

	chunk := &ChunkRecord{ID: "c-1", DocumentID: doc.ID, ChunkIndex: 0, Category: "api-reference", Text: "text"}
	if err := repo.Insert(ctx, chunk); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := repo.DeleteByDocument(ctx, doc.ID); err != nil {
		t.Fatalf("DeleteByDocument() error = %v", err)
	}

	ids, err := repo.ListIDsByDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("ListIDsByDocument() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("chunks remain after delete: %v", ids)
	}

	// Deleting again is a no-op, not an error.
	if err := repo.DeleteByDocument(ctx, doc.ID); err != nil {
		t.Errorf("second DeleteByDocument() error = %v", err)
	}
}

func TestChunkRepo_ListAll(t *testing.T) {
	repo, doc := setupChunkTest(t)
	ctx := context.Background()

	for i, id := range []string{"c-0", "c-1"} {
		chunk := &ChunkRecord{ID: id, DocumentID: doc.ID, ChunkIndex: i, Category: "api-reference", Text: "text"}
		if err := repo.Insert(ctx, chunk); err != nil {
			t.Fatalf("Insert(%s) error = %v", id, err)
		}
	}

	chunks, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Errorf("ListAll() = %d chunks, want 2", len(chunks))
	}
}
