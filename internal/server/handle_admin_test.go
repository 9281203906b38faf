package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quizrally/api/internal/game"
	"github.com/quizrally/api/internal/quizstore"
)

// login authenticates with the seeded demo admin and returns the session
// cookie to attach to subsequent requests.
func (e testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := e.postJSON(t, "/api/admin/login", AdminLoginRequest{
		Username: defaultAdminUsername,
		Password: defaultAdminPassword,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookieName {
			return c
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}

func (e testEnv) adminRequest(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		data, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestAdminLoginBadCredentials(t *testing.T) {
	env := setupEnv(t)

	w := env.postJSON(t, "/api/admin/login", AdminLoginRequest{
		Username: defaultAdminUsername,
		Password: "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", w.Code)
	}

	w = env.postJSON(t, "/api/admin/login", AdminLoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown user: expected 401, got %d", w.Code)
	}
}

func TestAdminMe(t *testing.T) {
	env := setupEnv(t)
	cookie := env.login(t)

	w := env.adminRequest(t, http.MethodGet, "/api/admin/me", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var me AdminMeResponse
	json.NewDecoder(w.Body).Decode(&me)
	if me.Username != defaultAdminUsername {
		t.Errorf("username = %q, want %q", me.Username, defaultAdminUsername)
	}

	// Without a cookie the same endpoint refuses.
	w = env.adminRequest(t, http.MethodGet, "/api/admin/me", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no cookie: expected 401, got %d", w.Code)
	}
}

func TestAdminLogoutInvalidatesSession(t *testing.T) {
	env := setupEnv(t)
	cookie := env.login(t)

	w := env.adminRequest(t, http.MethodPost, "/api/admin/logout", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	w = env.adminRequest(t, http.MethodGet, "/api/admin/me", nil, cookie)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("after logout: expected 401, got %d", w.Code)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	env := setupEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/quizzes/"},
		{http.MethodGet, "/api/admin/games/"},
		{http.MethodPost, "/api/admin/games/x/advance"},
	}
	for _, p := range paths {
		w := env.adminRequest(t, p.method, p.path, nil, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, w.Code)
		}
	}
}

func TestAdminQuizCRUD(t *testing.T) {
	env := setupEnv(t)
	cookie := env.login(t)

	w := env.adminRequest(t, http.MethodPost, "/api/admin/quizzes/", AdminQuizRequest{
		Name:        "Geography",
		Description: "Capitals and rivers",
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var quiz quizstore.Quiz
	json.NewDecoder(w.Body).Decode(&quiz)
	if quiz.ID == "" || quiz.Name != "Geography" {
		t.Fatalf("quiz = %+v", quiz)
	}

	w = env.adminRequest(t, http.MethodPut, "/api/admin/quizzes/"+quiz.ID, AdminQuizRequest{
		Name: "World Geography",
	}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = env.adminRequest(t, http.MethodGet, "/api/admin/quizzes/"+quiz.ID, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	json.NewDecoder(w.Body).Decode(&quiz)
	if quiz.Name != "World Geography" {
		t.Errorf("name after update = %q", quiz.Name)
	}

	w = env.adminRequest(t, http.MethodDelete, "/api/admin/quizzes/"+quiz.ID, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	w = env.adminRequest(t, http.MethodGet, "/api/admin/quizzes/"+quiz.ID, nil, cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestAdminQuestionValidation(t *testing.T) {
	env := setupEnv(t)
	cookie := env.login(t)

	// Range questions must carry their bounds.
	w := env.adminRequest(t, http.MethodPost, "/api/admin/quizzes/"+env.quizID+"/questions", AdminQuestionRequest{
		Text:     "How tall?",
		Position: 10,
		Type:     "range",
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("range without bounds: expected 400, got %d: %s", w.Code, w.Body.String())
	}

	min, max, correct := 0.0, 100.0, 42.0
	w = env.adminRequest(t, http.MethodPost, "/api/admin/quizzes/"+env.quizID+"/questions", AdminQuestionRequest{
		Text:         "How tall?",
		Position:     10,
		Type:         "range",
		MinValue:     &min,
		MaxValue:     &max,
		CorrectValue: &correct,
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("valid range question: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = env.adminRequest(t, http.MethodPost, "/api/admin/quizzes/"+env.quizID+"/questions", AdminQuestionRequest{
		Text:     "Bad type",
		Position: 11,
		Type:     "essay",
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown type: expected 400, got %d", w.Code)
	}
}

func TestAdminQuestionAndOptionFlow(t *testing.T) {
	env := setupEnv(t)
	cookie := env.login(t)

	w := env.adminRequest(t, http.MethodPost, "/api/admin/quizzes/"+env.quizID+"/questions", AdminQuestionRequest{
		Text:     "Largest lake in Peru?",
		Position: 20,
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create question: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var question quizstore.Question
	json.NewDecoder(w.Body).Decode(&question)

	w = env.adminRequest(t, http.MethodPost, "/api/admin/questions/"+question.ID+"/options", AdminOptionRequest{
		Text: "Lake Titicaca", IsCorrect: true,
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create option: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var option quizstore.Option
	json.NewDecoder(w.Body).Decode(&option)

	w = env.adminRequest(t, http.MethodPut, "/api/admin/options/"+option.ID, AdminOptionRequest{
		Text: "Titicaca", IsCorrect: true,
	}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("update option: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = env.adminRequest(t, http.MethodGet, "/api/admin/questions/"+question.ID, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("get question: expected 200, got %d", w.Code)
	}
	json.NewDecoder(w.Body).Decode(&question)
	if len(question.Options) != 1 || question.Options[0].Text != "Titicaca" {
		t.Errorf("options = %+v", question.Options)
	}

	w = env.adminRequest(t, http.MethodDelete, "/api/admin/options/"+option.ID, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("delete option: expected 200, got %d", w.Code)
	}
	w = env.adminRequest(t, http.MethodDelete, "/api/admin/questions/"+question.ID, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("delete question: expected 200, got %d", w.Code)
	}
}

func TestAdminCreateAndAdvanceGame(t *testing.T) {
	env := setupEnv(t)
	cookie := env.login(t)

	w := env.adminRequest(t, http.MethodPost, "/api/admin/games/", AdminGameRequest{
		Name: "Friday round", QuizID: env.quizID,
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create game: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var summary game.Summary
	json.NewDecoder(w.Body).Decode(&summary)
	if summary.ID == "" || len(summary.Code) != 6 {
		t.Fatalf("summary = %+v", summary)
	}

	// Creating a game against a missing quiz is rejected up front.
	w = env.adminRequest(t, http.MethodPost, "/api/admin/games/", AdminGameRequest{
		Name: "Bad", QuizID: "missing",
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing quiz: expected 400, got %d", w.Code)
	}

	w = env.adminRequest(t, http.MethodPost, "/api/admin/games/"+summary.ID+"/advance", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("advance: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var adv AdvanceResponse
	json.NewDecoder(w.Body).Decode(&adv)
	if adv.QuestionNumber != 1 {
		t.Errorf("questionNumber = %d, want 1", adv.QuestionNumber)
	}

	w = env.adminRequest(t, http.MethodGet, "/api/admin/games/"+summary.ID, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("get game: expected 200, got %d", w.Code)
	}
	var detail game.Detail
	json.NewDecoder(w.Body).Decode(&detail)
	if detail.Phase != game.PhaseQuestioning {
		t.Errorf("phase = %q, want %q", detail.Phase, game.PhaseQuestioning)
	}

	w = env.adminRequest(t, http.MethodPost, "/api/admin/games/missing/advance", nil, cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("advance missing game: expected 404, got %d", w.Code)
	}
}
