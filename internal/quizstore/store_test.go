package quizstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quizrally/api/internal/database"
	"github.com/quizrally/api/internal/game"
	"github.com/quizrally/api/internal/migrations"
	"github.com/quizrally/api/internal/quizstore"
)

func setupStore(t *testing.T) *quizstore.Store {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return quizstore.New(db)
}

func TestQuizCRUD(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	quiz, err := store.CreateQuiz(ctx, "Geography", "Capitals and rivers")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if quiz.ID == "" || quiz.CreatedAt == "" {
		t.Fatalf("quiz missing generated fields: %+v", quiz)
	}

	got, err := store.GetQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Geography" {
		t.Errorf("name = %q, want Geography", got.Name)
	}

	updated, err := store.UpdateQuiz(ctx, quiz.ID, "Geo", "Shorter")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Geo" || updated.Description != "Shorter" {
		t.Errorf("updated = %+v", updated)
	}

	quizzes, err := store.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quizzes) != 1 {
		t.Fatalf("list = %d quizzes, want 1", len(quizzes))
	}

	if err := store.DeleteQuiz(ctx, quiz.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetQuiz(ctx, quiz.ID); !errors.Is(err, quizstore.ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
	if err := store.DeleteQuiz(ctx, quiz.ID); !errors.Is(err, quizstore.ErrNotFound) {
		t.Errorf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestQuestionByQuizAndOrder(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	quiz, err := store.CreateQuiz(ctx, "Geography", "")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	q1, err := store.CreateQuestion(ctx, quiz.ID, quizstore.QuestionInput{
		Text: "Capital of Peru?", Position: 1, Type: game.TypeMultipleChoice,
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	correct, err := store.CreateOption(ctx, q1.ID, "Lima", true)
	if err != nil {
		t.Fatalf("create option: %v", err)
	}
	if _, err := store.CreateOption(ctx, q1.ID, "Cusco", false); err != nil {
		t.Fatalf("create option: %v", err)
	}

	got, err := store.QuestionByQuizAndOrder(ctx, quiz.ID, 1)
	if err != nil {
		t.Fatalf("question by order: %v", err)
	}
	if got.ID != q1.ID || got.Text != "Capital of Peru?" {
		t.Errorf("got %+v", got)
	}
	if len(got.Options) != 2 {
		t.Fatalf("options = %d, want 2", len(got.Options))
	}
	if got.Options[0].ID != correct.ID || !got.Options[0].Correct {
		t.Errorf("first option = %+v, want the correct Lima option", got.Options[0])
	}

	// One past the end of the quiz.
	if _, err := store.QuestionByQuizAndOrder(ctx, quiz.ID, 2); !errors.Is(err, game.ErrQuestionNotFound) {
		t.Errorf("err = %v, want game.ErrQuestionNotFound", err)
	}
	if _, err := store.QuestionByQuizAndOrder(ctx, "missing", 1); !errors.Is(err, game.ErrQuestionNotFound) {
		t.Errorf("unknown quiz: err = %v, want game.ErrQuestionNotFound", err)
	}
}

func TestRangeQuestionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	quiz, _ := store.CreateQuiz(ctx, "Numbers", "")
	min, max, correct := 0.0, 10000.0, 6768.0
	q, err := store.CreateQuestion(ctx, quiz.ID, quizstore.QuestionInput{
		Text: "Height of Huascarán?", Position: 1, Type: game.TypeRange,
		MinValue: &min, MaxValue: &max, CorrectValue: &correct,
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	got, err := store.QuestionByQuizAndOrder(ctx, quiz.ID, 1)
	if err != nil {
		t.Fatalf("question by order: %v", err)
	}
	if got.Type != game.TypeRange {
		t.Errorf("type = %q, want %q", got.Type, game.TypeRange)
	}
	if got.Min != 0 || got.Max != 10000 || got.CorrectValue != 6768 {
		t.Errorf("range = %v..%v correct %v", got.Min, got.Max, got.CorrectValue)
	}

	fetched, err := store.GetQuestion(ctx, q.ID)
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if fetched.CorrectValue == nil || *fetched.CorrectValue != 6768 {
		t.Errorf("correct value = %v, want 6768", fetched.CorrectValue)
	}
}

func TestQuestionCRUDAndCascade(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	quiz, _ := store.CreateQuiz(ctx, "Geography", "")
	q, err := store.CreateQuestion(ctx, quiz.ID, quizstore.QuestionInput{
		Text: "Capital of Peru?", Position: 1, Type: game.TypeMultipleChoice,
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	o, err := store.CreateOption(ctx, q.ID, "Lima", true)
	if err != nil {
		t.Fatalf("create option: %v", err)
	}

	updated, err := store.UpdateQuestion(ctx, q.ID, quizstore.QuestionInput{
		Text: "Capital city of Peru?", Position: 2, Type: game.TypeMultipleChoice,
	})
	if err != nil {
		t.Fatalf("update question: %v", err)
	}
	if updated.Text != "Capital city of Peru?" || updated.Position != 2 {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := store.UpdateOption(ctx, o.ID, "Lima!", false); err != nil {
		t.Fatalf("update option: %v", err)
	}

	questions, err := store.QuestionsByQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("questions by quiz: %v", err)
	}
	if len(questions) != 1 || len(questions[0].Options) != 1 {
		t.Fatalf("questions = %+v", questions)
	}

	// Deleting the quiz cascades to questions and options.
	if err := store.DeleteQuiz(ctx, quiz.ID); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}
	if _, err := store.GetQuestion(ctx, q.ID); !errors.Is(err, quizstore.ErrNotFound) {
		t.Errorf("question survived cascade: err = %v", err)
	}
	if err := store.DeleteOption(ctx, o.ID); !errors.Is(err, quizstore.ErrNotFound) {
		t.Errorf("option survived cascade: err = %v", err)
	}

	if _, err := store.CreateQuestion(ctx, "missing", quizstore.QuestionInput{Text: "?"}); !errors.Is(err, quizstore.ErrNotFound) {
		t.Errorf("create question on missing quiz: err = %v", err)
	}
	if _, err := store.CreateOption(ctx, "missing", "A", false); !errors.Is(err, quizstore.ErrNotFound) {
		t.Errorf("create option on missing question: err = %v", err)
	}
}
