package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_source_store.go -package=mocks github.com/ReesavGupta/RAG-playground/internal/storage SourceStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SourceStore defines the interface for source storage operations.
type SourceStore interface {
	// GetOrCreateByName gets an existing source by name, or creates it.
	GetOrCreateByName(ctx context.Context, name, rootPath string) (SourceRecord, error)
	// ListAll returns all sources ordered by name.
	ListAll(ctx context.Context) ([]SourceRecord, error)
}

// SourceRepo provides methods for source operations.
// It implements the SourceStore interface.
type SourceRepo struct {
	db *sql.DB
}

// NewSourceRepo creates a new SourceRepo.
func NewSourceRepo(db *sql.DB) *SourceRepo {
	return &SourceRepo{db: db}
}

// GetOrCreateByName gets an existing source by name, or creates it if it
// doesn't exist.
func (r *SourceRepo) GetOrCreateByName(ctx context.Context, name, rootPath string) (SourceRecord, error) {
	source, err := r.getByName(ctx, name)
	if err == nil {
		return source, nil
	}
	if err != ErrNotFound {
		return SourceRecord{}, err
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO sources (name, root_path) VALUES (?, ?)",
		name, rootPath,
	)
	if err != nil {
		return SourceRecord{}, fmt.Errorf("failed to insert source: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return SourceRecord{}, fmt.Errorf("failed to get inserted source ID: %w", err)
	}

	return r.getByID(ctx, int(id))
}

// ListAll returns all sources ordered by name.
func (r *SourceRepo) ListAll(ctx context.Context) ([]SourceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, root_path, created_at FROM sources ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sources []SourceRecord
	for rows.Next() {
		var source SourceRecord
		var createdAtStr string
		if err := rows.Scan(&source.ID, &source.Name, &source.RootPath, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		source.CreatedAt, err = parseSQLiteTime(createdAtStr)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sources, nil
}

func (r *SourceRepo) getByName(ctx context.Context, name string) (SourceRecord, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT id, name, root_path, created_at FROM sources WHERE name = ?",
		name,
	))
}

func (r *SourceRepo) getByID(ctx context.Context, id int) (SourceRecord, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT id, name, root_path, created_at FROM sources WHERE id = ?",
		id,
	))
}

func (r *SourceRepo) scanOne(row *sql.Row) (SourceRecord, error) {
	var source SourceRecord
	var createdAtStr string
	err := row.Scan(&source.ID, &source.Name, &source.RootPath, &createdAtStr)
	if err == sql.ErrNoRows {
		return SourceRecord{}, ErrNotFound
	}
	if err != nil {
		return SourceRecord{}, fmt.Errorf("failed to query source: %w", err)
	}
	source.CreatedAt, err = parseSQLiteTime(createdAtStr)
	if err != nil {
		return SourceRecord{}, err
	}
	return source, nil
}

// parseSQLiteTime parses a SQLite DATETIME string in either of the formats
// the driver may return.
func parseSQLiteTime(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
