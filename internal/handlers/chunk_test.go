package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChunkHandler(t *testing.T) {
	handler := NewChunkHandler()

	text := "# Refund Policy\n\nSection 1 covers compliance requirements for refunds.\n\n# Appeals\n\nSection 2 covers the appeals procedure.\n"
	body, _ := json.Marshal(ChunkRequest{Text: text})

	req := httptest.NewRequest(http.MethodPost, "/api/chunk", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp ChunkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Category != "policy" {
		t.Errorf("category = %q, want policy", resp.Category)
	}
	if resp.Policy.WindowSize == 0 {
		t.Error("policy window size should be set")
	}
	if resp.Signals.Headings != 2 {
		t.Errorf("signals headings = %d, want 2", resp.Signals.Headings)
	}
	if len(resp.Chunks) == 0 {
		t.Fatal("no chunks returned")
	}
	for i, chunk := range resp.Chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d index = %d", i, chunk.Index)
		}
		if chunk.Text != text[chunk.Start:chunk.End] {
			t.Errorf("chunk %d text does not match its span", i)
		}
	}
}

func TestChunkHandler_ForcedCategory(t *testing.T) {
	handler := NewChunkHandler()

	body, _ := json.Marshal(ChunkRequest{Text: "plain text without structure", Category: "api-reference"})
	req := httptest.NewRequest(http.MethodPost, "/api/chunk", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp ChunkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Category != "api-reference" {
		t.Errorf("category = %q, want api-reference", resp.Category)
	}
}

func TestChunkHandler_EmptyText(t *testing.T) {
	handler := NewChunkHandler()

	body, _ := json.Marshal(ChunkRequest{Text: ""})
	req := httptest.NewRequest(http.MethodPost, "/api/chunk", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for empty text", w.Code)
	}

	var resp ChunkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Category != "generic" {
		t.Errorf("category = %q, want generic for empty input", resp.Category)
	}
	if len(resp.Chunks) != 0 {
		t.Errorf("chunks = %d, want 0 for empty input", len(resp.Chunks))
	}
}

func TestChunkHandler_InvalidCategory(t *testing.T) {
	handler := NewChunkHandler()

	body, _ := json.Marshal(ChunkRequest{Text: "text", Category: "nonsense"})
	req := httptest.NewRequest(http.MethodPost, "/api/chunk", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
