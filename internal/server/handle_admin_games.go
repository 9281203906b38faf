package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizrally/api/internal/game"
	"github.com/quizrally/api/internal/quizstore"
)

// AdminGameRequest is the request body for POST /api/admin/games.
type AdminGameRequest struct {
	Name   string `json:"name"`
	QuizID string `json:"quizId"`
}

// AdvanceResponse is returned after advancing a game.
type AdvanceResponse struct {
	QuestionNumber int `json:"questionNumber"`
}

func (req *AdminGameRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.QuizID = strings.TrimSpace(req.QuizID)
	if req.Name == "" {
		return "name is required"
	}
	if req.QuizID == "" {
		return "quizId is required"
	}
	return ""
}

func handleAdminListGames(games *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, games.Summaries())
	}
}

func handleAdminCreateGame(quizzes *quizstore.Store, games *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		// Verify the quiz exists before starting a session around it.
		if _, err := quizzes.GetQuiz(r.Context(), req.QuizID); errors.Is(err, quizstore.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "quiz not found")
			return
		} else if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, games.Create(req.Name, req.QuizID))
	}
}

func handleAdminGetGame(games *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := games.Detail(chi.URLParam(r, "gameID"))
		if errors.Is(err, game.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func handleAdminAdvanceGame(games *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := games.Advance(r.Context(), chi.URLParam(r, "gameID"))
		if errors.Is(err, game.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if errors.Is(err, game.ErrQuestionNotFound) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, AdvanceResponse{QuestionNumber: n})
	}
}
