package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks github.com/ReesavGupta/RAG-playground/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// GetBySourceAndPath gets a document by source ID and relative path.
	// Returns nil and ErrNotFound if not found.
	GetBySourceAndPath(ctx context.Context, sourceID int, relPath string) (*DocumentRecord, error)
	// Upsert inserts a new document or updates an existing one.
	Upsert(ctx context.Context, doc *DocumentRecord) error
	// ListAll returns all documents ordered by source and relative path.
	ListAll(ctx context.Context) ([]*DocumentRecord, error)
	// CountByCategory returns the number of documents per category label.
	CountByCategory(ctx context.Context) (map[string]int, error)
	// CountWithoutChunks returns the number of documents that have no chunks.
	CountWithoutChunks(ctx context.Context) (int, error)
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetBySourceAndPath gets a document by source ID and relative path.
// Returns nil and ErrNotFound if not found.
func (r *DocumentRepo) GetBySourceAndPath(ctx context.Context, sourceID int, relPath string) (*DocumentRecord, error) {
	var doc DocumentRecord
	var updatedAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, source_id, rel_path, folder, title, category, updated_at, hash FROM documents WHERE source_id = ? AND rel_path = ?",
		sourceID, relPath,
	).Scan(&doc.ID, &doc.SourceID, &doc.RelPath, &doc.Folder, &doc.Title, &doc.Category, &updatedAtStr, &doc.Hash)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	doc.UpdatedAt, err = parseSQLiteTime(updatedAtStr)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// Upsert inserts a new document or updates an existing one.
// If the document doesn't exist (by source_id and rel_path), generates a new
// UUID. If it exists, updates title, category, updated_at, and hash while
// preserving the ID.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *DocumentRecord) error {
	existing, err := r.GetBySourceAndPath(ctx, doc.SourceID, doc.RelPath)
	if err != nil && err != ErrNotFound {
		return fmt.Errorf("failed to check existing document: %w", err)
	}

	if existing == nil && doc.ID == "" {
		doc.ID = uuid.New().String()
	} else if existing != nil {
		doc.ID = existing.ID
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, source_id, rel_path, folder, title, category, updated_at, hash)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, ?)
		 ON CONFLICT (source_id, rel_path) DO UPDATE SET
		 title = excluded.title, category = excluded.category, updated_at = CURRENT_TIMESTAMP, hash = excluded.hash`,
		doc.ID, doc.SourceID, doc.RelPath, doc.Folder, doc.Title, doc.Category, doc.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	return nil
}

// ListAll returns all documents ordered by source and relative path.
func (r *DocumentRepo) ListAll(ctx context.Context) ([]*DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, source_id, rel_path, folder, title, category, updated_at, hash FROM documents ORDER BY source_id, rel_path",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []*DocumentRecord
	for rows.Next() {
		var doc DocumentRecord
		var updatedAtStr string
		if err := rows.Scan(&doc.ID, &doc.SourceID, &doc.RelPath, &doc.Folder, &doc.Title, &doc.Category, &updatedAtStr, &doc.Hash); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.UpdatedAt, err = parseSQLiteTime(updatedAtStr)
		if err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}

// CountByCategory returns the number of documents per category label.
func (r *DocumentRepo) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT category, COUNT(*) FROM documents GROUP BY category",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[category] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}

// CountWithoutChunks returns the number of documents that have no chunks.
func (r *DocumentRepo) CountWithoutChunks(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents
		 WHERE id NOT IN (SELECT DISTINCT document_id FROM chunks)`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents without chunks: %w", err)
	}
	return count, nil
}
