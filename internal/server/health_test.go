package server

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestHandleHealth(t *testing.T) {
	env := setupEnv(t)

	w := env.get(t, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SQLite != "ok" {
		t.Errorf("sqlite = %q, want %q", resp.SQLite, "ok")
	}
}
