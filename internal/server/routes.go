package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/quizrally/api/internal/game"
	"github.com/quizrally/api/internal/quizstore"
)

func addRoutes(r chi.Router, logger *slog.Logger, db *sql.DB, quizzes *quizstore.Store, games *game.Registry) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("QuizRally API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	// Player routes — join code is the only credential.
	r.Route("/api/games", func(r chi.Router) {
		r.Get("/{code}", handleGameLookup(games))
		r.Post("/{gameID}/teams", handleCreateTeam(games))
		r.Post("/{gameID}/join", handleJoinTeam(games))
		r.Post("/{gameID}/answers", handleSubmitAnswer(games))
		r.Get("/{gameID}/events", handleGameEvents(games))
	})

	// Admin auth.
	r.Post("/api/admin/login", handleAdminLogin(db))
	r.Post("/api/admin/logout", handleAdminLogout(db))
	r.Get("/api/admin/me", handleAdminMe(db))

	// Admin quiz content — CRUD over quizzes, questions, options.
	r.Route("/api/admin/quizzes", func(r chi.Router) {
		r.Use(adminAuthMiddleware(db))
		r.Get("/", handleAdminListQuizzes(quizzes))
		r.Post("/", handleAdminCreateQuiz(quizzes))
		r.Get("/{quizID}", handleAdminGetQuiz(quizzes))
		r.Put("/{quizID}", handleAdminUpdateQuiz(quizzes))
		r.Delete("/{quizID}", handleAdminDeleteQuiz(quizzes))
		r.Get("/{quizID}/questions", handleAdminListQuestions(quizzes))
		r.Post("/{quizID}/questions", handleAdminCreateQuestion(quizzes))
	})
	r.Route("/api/admin/questions", func(r chi.Router) {
		r.Use(adminAuthMiddleware(db))
		r.Get("/{questionID}", handleAdminGetQuestion(quizzes))
		r.Put("/{questionID}", handleAdminUpdateQuestion(quizzes))
		r.Delete("/{questionID}", handleAdminDeleteQuestion(quizzes))
		r.Post("/{questionID}/options", handleAdminCreateOption(quizzes))
	})
	r.Route("/api/admin/options", func(r chi.Router) {
		r.Use(adminAuthMiddleware(db))
		r.Put("/{optionID}", handleAdminUpdateOption(quizzes))
		r.Delete("/{optionID}", handleAdminDeleteOption(quizzes))
	})

	// Admin game control — live sessions.
	r.Route("/api/admin/games", func(r chi.Router) {
		r.Use(adminAuthMiddleware(db))
		r.Get("/", handleAdminListGames(games))
		r.Post("/", handleAdminCreateGame(quizzes, games))
		r.Get("/{gameID}", handleAdminGetGame(games))
		r.Post("/{gameID}/advance", handleAdminAdvanceGame(games))
	})
}
