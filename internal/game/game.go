// Package game holds the live game-session engine: the session registry,
// the per-session phase machine, answer collection, and event fan-out to
// connected players and displays. Everything here lives in process memory
// for the lifetime of the server; quiz content is fetched on demand through
// the QuestionSource interface.
package game

import "context"

// QuestionType discriminates how a question is answered and scored.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeYesNo          QuestionType = "yes_no"
	TypeRange          QuestionType = "range"
)

// Option is one possible answer to a choice question.
type Option struct {
	ID      string
	Text    string
	Correct bool
}

// Question is the content snapshot served during a questioning phase. It is
// fetched fresh from the QuestionSource on every advance and never cached.
type Question struct {
	ID   string
	Text string
	Type QuestionType

	Options []Option

	// Range questions only.
	Min          float64
	Max          float64
	CorrectValue float64
}

// QuestionSource loads quiz content by (quiz, order). Implementations return
// ErrQuestionNotFound when no question exists at the given order, which is
// how the engine detects the end of a quiz.
type QuestionSource interface {
	QuestionByQuizAndOrder(ctx context.Context, quizID string, order int) (Question, error)
}

// rangeTolerance is the fraction of a range question's (max-min) span within
// which a submitted value still counts as correct.
const rangeTolerance = 0.05

// Answer is one player's submission for one question. Exactly one of
// OptionID or Value is meaningful, selected by HasValue.
type Answer struct {
	OptionID string
	Value    float64
	HasValue bool
}

// Phase is a session's stage in the game lifecycle.
type Phase string

const (
	PhaseNotStarted  Phase = "not-started"
	PhaseStarted     Phase = "started" // reserved; no transition produces it
	PhaseQuestioning Phase = "questioning"
	PhaseResults     Phase = "results"
	PhaseEnded       Phase = "ended"
)

// Player belongs to exactly one team for the life of the session.
type Player struct {
	ID    string
	Name  string
	Score int
}

// Team is an ordered, append-only group of players.
type Team struct {
	ID      string
	Name    string
	Players []*Player
}

// EventType tags the union of events published on phase transitions.
type EventType string

const (
	EventNewQuestion   EventType = "new_question"
	EventCorrectOption EventType = "correct_option"
	EventEnd           EventType = "end"
)

// EventOption is an answer choice as shown to players (no correctness flag).
type EventOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PlayerScore is a point-in-time view of a player.
type PlayerScore struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// TeamScore is a point-in-time view of a team; Score is the sum of its
// players' scores.
type TeamScore struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Score   int           `json:"score"`
	Players []PlayerScore `json:"players"`
}

// Event is published to every session subscriber on a phase transition.
// Fields beyond Type are populated per the event's kind.
type Event struct {
	Type EventType `json:"type"`

	// new_question
	Question     string        `json:"question,omitempty"`
	QuestionID   string        `json:"questionId,omitempty"`
	QuestionType QuestionType  `json:"questionType,omitempty"`
	Options      []EventOption `json:"options,omitempty"`
	Min          *float64      `json:"min,omitempty"`
	Max          *float64      `json:"max,omitempty"`

	// correct_option
	OptionID     string   `json:"optionId,omitempty"`
	CorrectValue *float64 `json:"correctValue,omitempty"`

	// correct_option and end
	Teams []TeamScore `json:"teams,omitempty"`
}

// Summary is the admin overview row for one session.
type Summary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	QuizID         string `json:"quizId"`
	Code           string `json:"code"`
	Phase          Phase  `json:"phase"`
	QuestionNumber int    `json:"questionNumber"`
	TeamCount      int    `json:"teamCount"`
	PlayerCount    int    `json:"playerCount"`
}

// Detail is the full admin view of a session, including per-player scores.
type Detail struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	QuizID         string      `json:"quizId"`
	Code           string      `json:"code"`
	Phase          Phase       `json:"phase"`
	QuestionNumber int         `json:"questionNumber"`
	Teams          []TeamScore `json:"teams"`
}

// PublicTeam is a team as shown to joining players: no scores.
type PublicTeam struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
}

// PublicDetail is the score-free session view returned for join-code lookups.
type PublicDetail struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Code  string       `json:"code"`
	Phase Phase        `json:"phase"`
	Teams []PublicTeam `json:"teams"`
}

// TeamInfo is the response to team creation and joining.
type TeamInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlayerInfo is the response to a player joining a team.
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
