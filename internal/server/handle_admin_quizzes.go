package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizrally/api/internal/quizstore"
)

// AdminQuizRequest is the request body for quiz create and update.
type AdminQuizRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req *AdminQuizRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" {
		return "name is required"
	}
	return ""
}

func handleAdminListQuizzes(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := quizzes.ListQuizzes(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if list == nil {
			list = []quizstore.Quiz{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleAdminCreateQuiz(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminQuizRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		quiz, err := quizzes.CreateQuiz(r.Context(), req.Name, req.Description)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, quiz)
	}
}

func handleAdminGetQuiz(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quiz, err := quizzes.GetQuiz(r.Context(), chi.URLParam(r, "quizID"))
		if errors.Is(err, quizstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, quiz)
	}
}

func handleAdminUpdateQuiz(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminQuizRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		quiz, err := quizzes.UpdateQuiz(r.Context(), chi.URLParam(r, "quizID"), req.Name, req.Description)
		if errors.Is(err, quizstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, quiz)
	}
}

func handleAdminDeleteQuiz(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := quizzes.DeleteQuiz(r.Context(), chi.URLParam(r, "quizID"))
		if errors.Is(err, quizstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
