package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizrally/api/internal/game"
	"github.com/quizrally/api/internal/quizstore"
)

// AdminQuestionRequest is the request body for question create and update.
type AdminQuestionRequest struct {
	Text         string   `json:"text"`
	Position     int      `json:"position"`
	Type         string   `json:"type"`
	MinValue     *float64 `json:"minValue"`
	MaxValue     *float64 `json:"maxValue"`
	CorrectValue *float64 `json:"correctValue"`
}

// AdminOptionRequest is the request body for option create and update.
type AdminOptionRequest struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

func (req *AdminQuestionRequest) validate() string {
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return "text is required"
	}
	if req.Position < 1 {
		return "position must be 1 or greater"
	}
	if req.Type == "" {
		req.Type = string(game.TypeMultipleChoice)
	}
	switch game.QuestionType(req.Type) {
	case game.TypeMultipleChoice, game.TypeYesNo:
	case game.TypeRange:
		if req.MinValue == nil || req.MaxValue == nil || req.CorrectValue == nil {
			return "range questions require minValue, maxValue, and correctValue"
		}
		if *req.MaxValue <= *req.MinValue {
			return "maxValue must be greater than minValue"
		}
	default:
		return "type must be multiple_choice, yes_no, or range"
	}
	return ""
}

func (req *AdminQuestionRequest) input() quizstore.QuestionInput {
	return quizstore.QuestionInput{
		Text:         req.Text,
		Position:     req.Position,
		Type:         game.QuestionType(req.Type),
		MinValue:     req.MinValue,
		MaxValue:     req.MaxValue,
		CorrectValue: req.CorrectValue,
	}
}

func handleAdminListQuestions(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID := chi.URLParam(r, "quizID")
		if _, err := quizzes.GetQuiz(r.Context(), quizID); errors.Is(err, quizstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}

		questions, err := quizzes.QuestionsByQuiz(r.Context(), quizID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if questions == nil {
			questions = []quizstore.Question{}
		}
		writeJSON(w, http.StatusOK, questions)
	}
}

func handleAdminCreateQuestion(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminQuestionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		question, err := quizzes.CreateQuestion(r.Context(), chi.URLParam(r, "quizID"), req.input())
		if errors.Is(err, quizstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, question)
	}
}

func handleAdminGetQuestion(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		question, err := quizzes.GetQuestion(r.Context(), chi.URLParam(r, "questionID"))
		if errors.Is(err, quizstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, question)
	}
}

func handleAdminUpdateQuestion(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminQuestionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		question, err := quizzes.UpdateQuestion(r.Context(), chi.URLParam(r, "questionID"), req.input())
		if errors.Is(err, quizstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, question)
	}
}

func handleAdminDeleteQuestion(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := quizzes.DeleteQuestion(r.Context(), chi.URLParam(r, "questionID"))
		if errors.Is(err, quizstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func handleAdminCreateOption(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminOptionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Text = strings.TrimSpace(req.Text)
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}

		option, err := quizzes.CreateOption(r.Context(), chi.URLParam(r, "questionID"), req.Text, req.IsCorrect)
		if errors.Is(err, quizstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, option)
	}
}

func handleAdminUpdateOption(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminOptionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Text = strings.TrimSpace(req.Text)
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}

		option, err := quizzes.UpdateOption(r.Context(), chi.URLParam(r, "optionID"), req.Text, req.IsCorrect)
		if errors.Is(err, quizstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "option not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, option)
	}
}

func handleAdminDeleteOption(quizzes *quizstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := quizzes.DeleteOption(r.Context(), chi.URLParam(r, "optionID"))
		if errors.Is(err, quizstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "option not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
