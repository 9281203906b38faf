package server

import (
	"context"
	"database/sql"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/quizrally/api/internal/game"
	"github.com/quizrally/api/internal/quizstore"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "changeme"
)

// SeedDemo creates the default admin and a demo quiz on first boot so a
// fresh binary is playable immediately. Idempotent: does nothing if an
// admin already exists.
func SeedDemo(ctx context.Context, logger *slog.Logger, db *sql.DB, quizzes *quizstore.Store) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `
		INSERT INTO admins (id, username, password_hash) VALUES (?, ?, ?)
	`, newToken(), defaultAdminUsername, string(hash)); err != nil {
		return err
	}

	quiz, err := quizzes.CreateQuiz(ctx, "Demo pub quiz", "A short quiz to try the game out")
	if err != nil {
		return err
	}

	q1, err := quizzes.CreateQuestion(ctx, quiz.ID, quizstore.QuestionInput{
		Text: "What is the capital of Peru?", Position: 1, Type: game.TypeMultipleChoice,
	})
	if err != nil {
		return err
	}
	for _, opt := range []struct {
		text    string
		correct bool
	}{
		{"Lima", true},
		{"Cusco", false},
		{"Arequipa", false},
		{"Trujillo", false},
	} {
		if _, err := quizzes.CreateOption(ctx, q1.ID, opt.text, opt.correct); err != nil {
			return err
		}
	}

	q2, err := quizzes.CreateQuestion(ctx, quiz.ID, quizstore.QuestionInput{
		Text: "Is the Pacific the largest ocean on Earth?", Position: 2, Type: game.TypeYesNo,
	})
	if err != nil {
		return err
	}
	if _, err := quizzes.CreateOption(ctx, q2.ID, "Yes", true); err != nil {
		return err
	}
	if _, err := quizzes.CreateOption(ctx, q2.ID, "No", false); err != nil {
		return err
	}

	min, max, correct := 0.0, 9000.0, 6768.0
	if _, err := quizzes.CreateQuestion(ctx, quiz.ID, quizstore.QuestionInput{
		Text: "How tall is Huascarán, in meters?", Position: 3, Type: game.TypeRange,
		MinValue: &min, MaxValue: &max, CorrectValue: &correct,
	}); err != nil {
		return err
	}

	logger.Info("seeded default admin and demo quiz", "quiz_id", quiz.ID)
	return nil
}
