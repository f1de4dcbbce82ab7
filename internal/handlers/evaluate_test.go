package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ReesavGupta/RAG-playground/internal/search"
)

func TestEvaluateHandler(t *testing.T) {
	engine := &stubEngine{
		evalReport: search.EvalReport{
			Total:       2,
			Successful:  2,
			SuccessRate: 1.0,
		},
	}
	handler := NewEvaluateHandler(engine)

	body, _ := json.Marshal(EvaluateRequest{
		Queries: []search.EvalQuery{
			{Query: "how to fix timeouts", ExpectedCategories: []string{"troubleshooting"}},
			{Query: "refund rules", ExpectedCategories: []string{"policy"}},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var report search.EvalReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if report.Total != 2 || report.SuccessRate != 1.0 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestEvaluateHandler_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "no queries", body: `{"queries": []}`, wantStatus: http.StatusBadRequest},
		{name: "empty query text", body: `{"queries": [{"query": ""}]}`, wantStatus: http.StatusBadRequest},
		{name: "bad category", body: `{"queries": [{"query": "q", "expected_categories": ["bogus"]}]}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewEvaluateHandler(&stubEngine{})
			req := httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewReader([]byte(tt.body)))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
