package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizrally/api/internal/game"
)

// CreateTeamRequest is the request body for POST /api/games/{gameID}/teams.
type CreateTeamRequest struct {
	Name string `json:"name"`
}

// JoinRequest is the request body for POST /api/games/{gameID}/join.
type JoinRequest struct {
	TeamID     string `json:"teamId"`
	PlayerName string `json:"playerName"`
}

// AnswerRequest is the request body for POST /api/games/{gameID}/answers.
// Choice questions set optionId; range questions set value.
type AnswerRequest struct {
	PlayerID   string   `json:"playerId"`
	QuestionID string   `json:"questionId"`
	OptionID   string   `json:"optionId"`
	Value      *float64 `json:"value"`
}

// handleGameLookup resolves a join code typed by a player into the
// score-free public view of the session.
func handleGameLookup(games *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
		detail, err := games.ByCode(code)
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

func handleCreateTeam(games *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTeamRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		team, err := games.CreateTeam(chi.URLParam(r, "gameID"), req.Name)
		if errors.Is(err, game.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, team)
	}
}

func handleJoinTeam(games *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.PlayerName = strings.TrimSpace(req.PlayerName)
		if req.TeamID == "" || req.PlayerName == "" {
			writeError(w, http.StatusBadRequest, "teamId and playerName are required")
			return
		}

		player, err := games.JoinTeam(chi.URLParam(r, "gameID"), req.TeamID, req.PlayerName)
		if errors.Is(err, game.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if errors.Is(err, game.ErrTeamNotFound) {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func handleSubmitAnswer(games *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.PlayerID == "" || req.QuestionID == "" {
			writeError(w, http.StatusBadRequest, "playerId and questionId are required")
			return
		}
		if req.OptionID == "" && req.Value == nil {
			writeError(w, http.StatusBadRequest, "optionId or value is required")
			return
		}

		answer := game.Answer{OptionID: req.OptionID}
		if req.Value != nil {
			answer = game.Answer{Value: *req.Value, HasValue: true}
		}

		err := games.SubmitAnswer(chi.URLParam(r, "gameID"), req.PlayerID, req.QuestionID, answer)
		if errors.Is(err, game.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if errors.Is(err, game.ErrPlayerNotFound) {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}
		if errors.Is(err, game.ErrInvalidPhase) {
			writeError(w, http.StatusConflict, "answers are only accepted during questioning")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
