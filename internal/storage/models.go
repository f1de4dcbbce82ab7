package storage

import "time"

// SourceRecord represents a registered corpus root in the database.
type SourceRecord struct {
	ID        int
	Name      string
	RootPath  string
	CreatedAt time.Time
}

// DocumentRecord represents an ingested document file in the database.
type DocumentRecord struct {
	ID        string    // UUID
	SourceID  int       // Foreign key to sources.id
	RelPath   string    // Relative path from source root
	Folder    string    // Folder path (path components except filename)
	Title     string    // Extracted title
	Category  string    // Category label assigned by the selector
	UpdatedAt time.Time
	Hash      string // SHA256 hex string of file content
}

// ChunkRecord represents a chunk of a document, indexed for vector search.
type ChunkRecord struct {
	ID          string // UUID (same as the vector store point ID)
	DocumentID  string // UUID (foreign key to documents.id)
	ChunkIndex  int    // Index within document (starts at 0)
	Category    string // Category label inherited from the document
	Section     string // Heading governing the chunk, if any
	StartOffset int    // Byte offset of the span start in the document text
	EndOffset   int    // Byte offset one past the span end
	Text        string // Chunk text content
}
