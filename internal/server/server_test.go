package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lazypower/tend/internal/config"
	"github.com/lazypower/tend/internal/store"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testServer(t *testing.T) *Server {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	srv := New(db, config.Default(), "test")
	srv.now = func() time.Time { return testNow }
	return srv
}

// do runs a request and decodes the JSON response into v (unless nil).
func do(t *testing.T, srv *Server, method, path, body string, v any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if v != nil {
		if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
			t.Fatalf("decode %s %s response: %v\nbody: %s", method, path, err, w.Body.String())
		}
	}
	return w
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	var resp map[string]any
	w := do(t, srv, "GET", "/api/health", "", &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
	if resp["db"] != true {
		t.Errorf("db = %v, want true", resp["db"])
	}
}
