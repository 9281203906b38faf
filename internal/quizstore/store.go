// Package quizstore is the SQLite-backed store for quiz content: quizzes,
// their ordered questions, and answer options. It serves two callers: the
// admin CRUD handlers, and the game engine, which reads questions one at a
// time through game.QuestionSource while a session is running.
package quizstore

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/quizrally/api/internal/game"
)

// ErrNotFound is returned when a quiz, question, or option does not exist.
var ErrNotFound = errors.New("not found")

type Quiz struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

type Question struct {
	ID           string            `json:"id"`
	QuizID       string            `json:"quizId"`
	Text         string            `json:"text"`
	Position     int               `json:"position"`
	Type         game.QuestionType `json:"type"`
	MinValue     *float64          `json:"minValue,omitempty"`
	MaxValue     *float64          `json:"maxValue,omitempty"`
	CorrectValue *float64          `json:"correctValue,omitempty"`
	Options      []Option          `json:"options"`
}

type Option struct {
	ID         string `json:"id"`
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"isCorrect"`
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// QuestionByQuizAndOrder implements game.QuestionSource. Position is
// 1-based; game.ErrQuestionNotFound marks the end of the quiz.
func (s *Store) QuestionByQuizAndOrder(ctx context.Context, quizID string, order int) (game.Question, error) {
	var (
		q                    game.Question
		minV, maxV, correctV sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, text, type, min_value, max_value, correct_value
		FROM questions
		WHERE quiz_id = ? AND position = ?
	`, quizID, order).Scan(&q.ID, &q.Text, &q.Type, &minV, &maxV, &correctV)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Question{}, game.ErrQuestionNotFound
	}
	if err != nil {
		return game.Question{}, fmt.Errorf("loading question: %w", err)
	}
	q.Min = minV.Float64
	q.Max = maxV.Float64
	q.CorrectValue = correctV.Float64

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, is_correct FROM options WHERE question_id = ? ORDER BY rowid
	`, q.ID)
	if err != nil {
		return game.Question{}, fmt.Errorf("loading options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o game.Option
		if err := rows.Scan(&o.ID, &o.Text, &o.Correct); err != nil {
			return game.Question{}, err
		}
		q.Options = append(q.Options, o)
	}
	return q, rows.Err()
}

func (s *Store) CreateQuiz(ctx context.Context, name, description string) (Quiz, error) {
	var q Quiz
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO quizzes (id, name, description)
		VALUES (?, ?, ?)
		RETURNING id, name, description, created_at
	`, newID(), name, description).Scan(&q.ID, &q.Name, &q.Description, &q.CreatedAt)
	return q, err
}

func (s *Store) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, created_at FROM quizzes ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []Quiz
	for rows.Next() {
		var q Quiz
		if err := rows.Scan(&q.ID, &q.Name, &q.Description, &q.CreatedAt); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

func (s *Store) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	var q Quiz
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at FROM quizzes WHERE id = ?
	`, id).Scan(&q.ID, &q.Name, &q.Description, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Quiz{}, ErrNotFound
	}
	return q, err
}

func (s *Store) UpdateQuiz(ctx context.Context, id, name, description string) (Quiz, error) {
	var q Quiz
	err := s.db.QueryRowContext(ctx, `
		UPDATE quizzes SET name = ?, description = ?
		WHERE id = ?
		RETURNING id, name, description, created_at
	`, name, description, id).Scan(&q.ID, &q.Name, &q.Description, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Quiz{}, ErrNotFound
	}
	return q, err
}

// DeleteQuiz removes the quiz; questions and options cascade.
func (s *Store) DeleteQuiz(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// QuestionInput carries the writable fields of a question.
type QuestionInput struct {
	Text         string
	Position     int
	Type         game.QuestionType
	MinValue     *float64
	MaxValue     *float64
	CorrectValue *float64
}

func (s *Store) CreateQuestion(ctx context.Context, quizID string, in QuestionInput) (Question, error) {
	if _, err := s.GetQuiz(ctx, quizID); err != nil {
		return Question{}, err
	}

	q := Question{
		ID:           newID(),
		QuizID:       quizID,
		Text:         in.Text,
		Position:     in.Position,
		Type:         in.Type,
		MinValue:     in.MinValue,
		MaxValue:     in.MaxValue,
		CorrectValue: in.CorrectValue,
		Options:      []Option{},
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (id, quiz_id, text, position, type, min_value, max_value, correct_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.QuizID, q.Text, q.Position, q.Type, q.MinValue, q.MaxValue, q.CorrectValue)
	return q, err
}

func (s *Store) QuestionsByQuiz(ctx context.Context, quizID string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, quiz_id, text, position, type, min_value, max_value, correct_value
		FROM questions WHERE quiz_id = ? ORDER BY position
	`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		opts, err := s.optionsByQuestion(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Options = opts
	}
	return questions, nil
}

func (s *Store) GetQuestion(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, quiz_id, text, position, type, min_value, max_value, correct_value
		FROM questions WHERE id = ?
	`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	if err != nil {
		return Question{}, err
	}
	q.Options, err = s.optionsByQuestion(ctx, q.ID)
	return q, err
}

func (s *Store) UpdateQuestion(ctx context.Context, id string, in QuestionInput) (Question, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE questions
		SET text = ?, position = ?, type = ?, min_value = ?, max_value = ?, correct_value = ?
		WHERE id = ?
	`, in.Text, in.Position, in.Type, in.MinValue, in.MaxValue, in.CorrectValue, id)
	if err != nil {
		return Question{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Question{}, err
	}
	if n == 0 {
		return Question{}, ErrNotFound
	}
	return s.GetQuestion(ctx, id)
}

func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateOption(ctx context.Context, questionID, text string, isCorrect bool) (Option, error) {
	var exists string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM questions WHERE id = ?`, questionID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return Option{}, ErrNotFound
	}
	if err != nil {
		return Option{}, err
	}

	o := Option{ID: newID(), QuestionID: questionID, Text: text, IsCorrect: isCorrect}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO options (id, question_id, text, is_correct) VALUES (?, ?, ?, ?)
	`, o.ID, o.QuestionID, o.Text, o.IsCorrect)
	return o, err
}

func (s *Store) UpdateOption(ctx context.Context, id, text string, isCorrect bool) (Option, error) {
	var o Option
	err := s.db.QueryRowContext(ctx, `
		UPDATE options SET text = ?, is_correct = ?
		WHERE id = ?
		RETURNING id, question_id, text, is_correct
	`, text, isCorrect, id).Scan(&o.ID, &o.QuestionID, &o.Text, &o.IsCorrect)
	if errors.Is(err, sql.ErrNoRows) {
		return Option{}, ErrNotFound
	}
	return o, err
}

func (s *Store) DeleteOption(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM options WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) optionsByQuestion(ctx context.Context, questionID string) ([]Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question_id, text, is_correct FROM options WHERE question_id = ? ORDER BY rowid
	`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := []Option{}
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.Text, &o.IsCorrect); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (Question, error) {
	var (
		q                    Question
		minV, maxV, correctV sql.NullFloat64
	)
	if err := row.Scan(&q.ID, &q.QuizID, &q.Text, &q.Position, &q.Type, &minV, &maxV, &correctV); err != nil {
		return Question{}, err
	}
	if minV.Valid {
		q.MinValue = &minV.Float64
	}
	if maxV.Valid {
		q.MaxValue = &maxV.Float64
	}
	if correctV.Valid {
		q.CorrectValue = &correctV.Float64
	}
	return q, nil
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
