package game

import "errors"

var (
	// ErrSessionNotFound is returned when no live session matches the given
	// id or join code.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrTeamNotFound is returned when a player tries to join a team that
	// does not exist in the session.
	ErrTeamNotFound = errors.New("team not found")
	// ErrPlayerNotFound is returned when an answer references a player id
	// that is not in the session's roster.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrQuestionNotFound indicates the question source has no question at
	// the requested position.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidPhase is returned for operations that are not valid in the
	// session's current phase, such as answering outside questioning.
	ErrInvalidPhase = errors.New("operation not valid in current phase")
)
