package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestScanRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "readme.md", "# Readme")
	writeFile(t, root, "guides/setup.markdown", "# Setup")
	writeFile(t, root, "guides/notes.txt", "plain text")
	writeFile(t, root, "image.png", "not indexable")
	writeFile(t, root, ".obsidian/config.md", "hidden")
	writeFile(t, root, ".hidden/deep/file.md", "hidden")

	files, err := scanRoot(1, "docs", root)
	if err != nil {
		t.Fatalf("scanRoot() error = %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("scanRoot() returned %d files, want 3: %+v", len(files), files)
	}

	byRel := make(map[string]ScannedFile)
	for _, f := range files {
		byRel[f.RelPath] = f
	}

	if _, ok := byRel["readme.md"]; !ok {
		t.Error("readme.md not found")
	}
	if f, ok := byRel["guides/setup.markdown"]; !ok {
		t.Error("guides/setup.markdown not found")
	} else if f.Folder != "guides" {
		t.Errorf("Folder = %q, want guides", f.Folder)
	}
	if f, ok := byRel["guides/notes.txt"]; !ok {
		t.Error("guides/notes.txt not found")
	} else if f.SourceID != 1 || f.SourceName != "docs" {
		t.Errorf("source fields = %d/%q, want 1/docs", f.SourceID, f.SourceName)
	}

	for rel := range byRel {
		if rel == "image.png" {
			t.Error("non-indexable extension was included")
		}
	}
}

func TestScanRoot_RootFolder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "top.md", "# Top")

	files, err := scanRoot(1, "docs", root)
	if err != nil {
		t.Fatalf("scanRoot() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if files[0].Folder != "" {
		t.Errorf("Folder for root-level file = %q, want empty", files[0].Folder)
	}
}

func TestScanRoot_NotADirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.md", "x")

	if _, err := scanRoot(1, "docs", filepath.Join(root, "file.md")); err == nil {
		t.Error("scanRoot() expected error for non-directory root")
	}
	if _, err := scanRoot(1, "docs", filepath.Join(root, "missing")); err == nil {
		t.Error("scanRoot() expected error for missing root")
	}
}
