package corpus

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ReesavGupta/RAG-playground/internal/storage"
)

// Root is a named directory of documents to register as a source.
type Root struct {
	Name string
	Path string
}

// Manager registers corpus roots as sources and provides lookup and path
// resolution for indexed files.
type Manager struct {
	sourceRepo storage.SourceStore
	sources    map[string]storage.SourceRecord // cached by name
}

// NewManager creates a corpus manager and registers every root as a source.
func NewManager(ctx context.Context, sourceRepo storage.SourceStore, roots []Root) (*Manager, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("at least one corpus root is required")
	}

	m := &Manager{
		sourceRepo: sourceRepo,
		sources:    make(map[string]storage.SourceRecord, len(roots)),
	}

	for _, root := range roots {
		source, err := sourceRepo.GetOrCreateByName(ctx, root.Name, root.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to register source %s: %w", root.Name, err)
		}
		m.sources[root.Name] = source
	}

	return m, nil
}

// SourceByName returns the source record for the given name.
func (m *Manager) SourceByName(name string) (storage.SourceRecord, error) {
	source, ok := m.sources[name]
	if !ok {
		return storage.SourceRecord{}, fmt.Errorf("source not found: %s", name)
	}
	return source, nil
}

// SourceByID returns the source record for the given ID.
func (m *Manager) SourceByID(id int) (storage.SourceRecord, error) {
	for _, source := range m.sources {
		if source.ID == id {
			return source, nil
		}
	}
	return storage.SourceRecord{}, fmt.Errorf("source not found: %d", id)
}

// Names returns the registered source names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AbsPath returns the absolute path for a file given its source ID and
// relative path, or empty string if the source is unknown.
func (m *Manager) AbsPath(sourceID int, relPath string) string {
	for _, source := range m.sources {
		if source.ID == sourceID {
			return filepath.Join(source.RootPath, relPath)
		}
	}
	return ""
}
