package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	storage_mocks "github.com/ReesavGupta/RAG-playground/internal/storage/mocks"
	vectorstore_mocks "github.com/ReesavGupta/RAG-playground/internal/vectorstore/mocks"

	"go.uber.org/mock/gomock"
)

func newTestDeps(t *testing.T, ctrl *gomock.Controller) *Deps {
	t.Helper()
	return &Deps{
		SourceRepo:   storage_mocks.NewMockSourceStore(ctrl),
		DocumentRepo: storage_mocks.NewMockDocumentStore(ctrl),
		VectorStore:  vectorstore_mocks.NewMockVectorStore(ctrl),
		Collection:   "corpus",
	}
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(newTestDeps(t, ctrl))
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)
	router := NewRouter(deps)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "POST /api/search exists",
			method:     http.MethodPost,
			path:       "/api/search",
			wantStatus: http.StatusBadRequest, // invalid body, but route exists
		},
		{
			name:       "POST /api/chunk exists",
			method:     http.MethodPost,
			path:       "/api/chunk",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "POST /api/evaluate exists",
			method:     http.MethodPost,
			path:       "/api/evaluate",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/nonexistent",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
