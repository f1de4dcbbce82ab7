package corpus

import (
	"context"
	"testing"

	"github.com/ReesavGupta/RAG-playground/internal/storage"
	"github.com/ReesavGupta/RAG-playground/internal/storage/mocks"
	"go.uber.org/mock/gomock"
)

func TestNewManager(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSourceRepo := mocks.NewMockSourceStore(ctrl)

	mockSourceRepo.EXPECT().
		GetOrCreateByName(gomock.Any(), "docs", "/tmp/docs").
		Return(storage.SourceRecord{ID: 1, Name: "docs", RootPath: "/tmp/docs"}, nil)

	mockSourceRepo.EXPECT().
		GetOrCreateByName(gomock.Any(), "runbooks", "/tmp/runbooks").
		Return(storage.SourceRecord{ID: 2, Name: "runbooks", RootPath: "/tmp/runbooks"}, nil)

	roots := []Root{
		{Name: "docs", Path: "/tmp/docs"},
		{Name: "runbooks", Path: "/tmp/runbooks"},
	}

	manager, err := NewManager(context.Background(), mockSourceRepo, roots)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if manager == nil {
		t.Fatal("NewManager() returned nil")
	}

	names := manager.Names()
	if len(names) != 2 || names[0] != "docs" || names[1] != "runbooks" {
		t.Errorf("Names() = %v, want [docs runbooks]", names)
	}
}

func TestNewManager_NoRoots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSourceRepo := mocks.NewMockSourceStore(ctrl)

	if _, err := NewManager(context.Background(), mockSourceRepo, nil); err == nil {
		t.Error("NewManager() expected error for empty roots, got nil")
	}
}

func TestNewManager_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSourceRepo := mocks.NewMockSourceStore(ctrl)

	mockSourceRepo.EXPECT().
		GetOrCreateByName(gomock.Any(), "docs", "/tmp/docs").
		Return(storage.SourceRecord{}, storage.ErrNotFound)

	manager, err := NewManager(context.Background(), mockSourceRepo, []Root{{Name: "docs", Path: "/tmp/docs"}})
	if err == nil {
		t.Error("NewManager() expected error, got nil")
	}
	if manager != nil {
		t.Error("NewManager() should return nil on error")
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSourceRepo := mocks.NewMockSourceStore(ctrl)
	mockSourceRepo.EXPECT().
		GetOrCreateByName(gomock.Any(), "docs", "/tmp/docs").
		Return(storage.SourceRecord{ID: 1, Name: "docs", RootPath: "/tmp/docs"}, nil)

	manager, err := NewManager(context.Background(), mockSourceRepo, []Root{{Name: "docs", Path: "/tmp/docs"}})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return manager
}

func TestManager_SourceByName(t *testing.T) {
	manager := newTestManager(t)

	source, err := manager.SourceByName("docs")
	if err != nil {
		t.Fatalf("SourceByName() error = %v", err)
	}
	if source.ID != 1 || source.Name != "docs" {
		t.Errorf("SourceByName() = %+v, want ID 1 name docs", source)
	}

	if _, err := manager.SourceByName("nonexistent"); err == nil {
		t.Error("SourceByName() expected error for unknown source, got nil")
	}
}

func TestManager_SourceByID(t *testing.T) {
	manager := newTestManager(t)

	source, err := manager.SourceByID(1)
	if err != nil {
		t.Fatalf("SourceByID() error = %v", err)
	}
	if source.Name != "docs" {
		t.Errorf("SourceByID() name = %q, want docs", source.Name)
	}

	if _, err := manager.SourceByID(99); err == nil {
		t.Error("SourceByID() expected error for unknown ID, got nil")
	}
}

func TestManager_AbsPath(t *testing.T) {
	manager := newTestManager(t)

	if got := manager.AbsPath(1, "guides/setup.md"); got != "/tmp/docs/guides/setup.md" {
		t.Errorf("AbsPath() = %q, want /tmp/docs/guides/setup.md", got)
	}
	if got := manager.AbsPath(99, "x.md"); got != "" {
		t.Errorf("AbsPath() for unknown source = %q, want empty", got)
	}
}
