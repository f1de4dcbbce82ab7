package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ReesavGupta/RAG-playground/internal/contextutil"
)

// ScannedFile describes one indexable file found under a corpus root.
type ScannedFile struct {
	SourceID   int
	SourceName string
	AbsPath    string
	RelPath    string // forward-slash path relative to the root
	Folder     string // forward-slash dir portion of RelPath, "" at root
}

var indexableExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".pdf":      true,
}

// ScanAll walks every registered root and returns the indexable files.
// Hidden directories (dot-prefixed) are skipped entirely.
func (m *Manager) ScanAll(ctx context.Context) ([]ScannedFile, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var files []ScannedFile
	for _, name := range m.Names() {
		source := m.sources[name]
		found, err := scanRoot(source.ID, source.Name, source.RootPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", name, err)
		}
		logger.Debug("scanned corpus root", "source", name, "files", len(found))
		files = append(files, found...)
	}
	return files, nil
}

func scanRoot(sourceID int, sourceName, rootPath string) ([]ScannedFile, error) {
	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", rootPath)
	}

	var files []ScannedFile
	err = filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != rootPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !indexableExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(rootPath, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		folder := ""
		if idx := strings.LastIndex(rel, "/"); idx >= 0 {
			folder = rel[:idx]
		}

		files = append(files, ScannedFile{
			SourceID:   sourceID,
			SourceName: sourceName,
			AbsPath:    path,
			RelPath:    rel,
			Folder:     folder,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
