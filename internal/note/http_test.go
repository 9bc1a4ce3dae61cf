package note_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"MiniSuite/internal/note"
)

func newNoteTS(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := note.NewDirStore(filepath.Join(t.TempDir(), "notes"), zap.NewNop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	s := &note.Server{Store: store, Log: zap.NewNop()}
	h := note.NewHandler(s, note.HTTPDeps{Log: zap.NewNop(), Service: "notes"})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func TestNoteAPI_Lifecycle(t *testing.T) {
	ts := newNoteTS(t)

	resp, raw := doJSON(t, ts, http.MethodPost, "/notes", map[string]any{
		"title":   "groceries",
		"content": "eggs, milk",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", resp.StatusCode, raw)
	}

	var created note.Note
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("empty id")
	}

	resp, raw = doJSON(t, ts, http.MethodGet, "/notes/"+created.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status=%d body=%s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, ts, http.MethodPut, "/notes/"+created.ID, map[string]any{
		"title":   "groceries v2",
		"content": "eggs, milk, coffee",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status=%d body=%s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, ts, http.MethodGet, "/notes", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status=%d", resp.StatusCode)
	}
	var notes []note.Note
	if err := json.Unmarshal(raw, &notes); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "groceries v2" {
		t.Fatalf("notes=%+v", notes)
	}

	resp, _ = doJSON(t, ts, http.MethodDelete, "/notes/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status=%d", resp.StatusCode)
	}

	resp, _ = doJSON(t, ts, http.MethodGet, "/notes/"+created.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted status=%d", resp.StatusCode)
	}
}

func TestNoteAPI_Validation(t *testing.T) {
	ts := newNoteTS(t)

	resp, raw := doJSON(t, ts, http.MethodPost, "/notes", map[string]any{"title": " ", "content": "x"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank title status=%d body=%s", resp.StatusCode, raw)
	}

	resp, _ = doJSON(t, ts, http.MethodPut, "/notes/nope", map[string]any{"title": "t", "content": "c"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("update missing status=%d", resp.StatusCode)
	}

	resp, _ = doJSON(t, ts, http.MethodDelete, "/notes/nope", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("delete missing status=%d", resp.StatusCode)
	}
}
