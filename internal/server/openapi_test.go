package server

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestHandleOpenAPI(t *testing.T) {
	env := setupEnv(t)

	w := env.get(t, "/openapi.json")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var spec struct {
		OpenAPI string                    `json:"openapi"`
		Info    struct{ Title string }    `json:"info"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(w.Body).Decode(&spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.OpenAPI == "" {
		t.Error("missing openapi version")
	}
	if spec.Info.Title != "QuizRally API" {
		t.Errorf("title = %q", spec.Info.Title)
	}

	for _, path := range []string{
		"/healthz",
		"/api/games/{code}",
		"/api/games/{gameID}/answers",
		"/api/admin/games/{gameID}/advance",
		"/api/admin/quizzes",
	} {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("spec missing path %s", path)
		}
	}
}
