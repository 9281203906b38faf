package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
)

// codeAlphabet skips 0/O/1/I so codes survive being read off a TV screen.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// Registry owns every live session in the process. It is constructed once
// in run() and injected into the HTTP handlers; sessions are never evicted,
// they live until the process exits.
type Registry struct {
	source QuestionSource

	mu       sync.RWMutex
	order    []*Session
	sessions map[string]*Session
	byCode   map[string]*Session
}

func NewRegistry(source QuestionSource) *Registry {
	return &Registry{
		source:   source,
		sessions: make(map[string]*Session),
		byCode:   make(map[string]*Session),
	}
}

// Create starts a new session in the not-started phase with a fresh id and
// a join code that is unique among live sessions.
func (r *Registry) Create(name, quizID string) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := newCode()
	for r.byCode[code] != nil {
		code = newCode()
	}

	s := newSession(newID(), name, quizID, code)
	r.order = append(r.order, s)
	r.sessions[s.id] = s
	r.byCode[s.code] = s
	return s.summary()
}

func (r *Registry) get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Detail returns the full admin view of a session, scores included.
func (r *Registry) Detail(id string) (Detail, error) {
	s, err := r.get(id)
	if err != nil {
		return Detail{}, err
	}
	return s.detail(), nil
}

// ByCode resolves a join code to the score-free public view of a session.
func (r *Registry) ByCode(code string) (PublicDetail, error) {
	r.mu.RLock()
	s, ok := r.byCode[code]
	r.mu.RUnlock()
	if !ok {
		return PublicDetail{}, ErrSessionNotFound
	}
	return s.publicDetail(), nil
}

// Summaries lists every session in creation order.
func (r *Registry) Summaries() []Summary {
	r.mu.RLock()
	sessions := make([]*Session, len(r.order))
	copy(sessions, r.order)
	r.mu.RUnlock()

	summaries := make([]Summary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, s.summary())
	}
	return summaries
}

// CreateTeam appends a new, empty team to the session's roster.
func (r *Registry) CreateTeam(sessionID, name string) (TeamInfo, error) {
	s, err := r.get(sessionID)
	if err != nil {
		return TeamInfo{}, err
	}
	return s.createTeam(name), nil
}

// JoinTeam adds a player with score 0 to the given team.
func (r *Registry) JoinTeam(sessionID, teamID, playerName string) (PlayerInfo, error) {
	s, err := r.get(sessionID)
	if err != nil {
		return PlayerInfo{}, err
	}
	return s.joinTeam(teamID, playerName)
}

// SubmitAnswer records a player's answer for the current question. Only
// valid while the session is questioning; last write wins per player.
func (r *Registry) SubmitAnswer(sessionID, playerID, questionID string, answer Answer) error {
	s, err := r.get(sessionID)
	if err != nil {
		return err
	}
	return s.submitAnswer(playerID, questionID, answer)
}

// Advance drives the session's phase machine one step and returns the
// current question number.
func (r *Registry) Advance(ctx context.Context, sessionID string) (int, error) {
	s, err := r.get(sessionID)
	if err != nil {
		return 0, err
	}
	return s.advance(ctx, r.source)
}

// Subscribe attaches a listener to the session's event stream. Events
// published before the subscription are not replayed. The caller must
// invoke the returned cancel func to detach.
func (r *Registry) Subscribe(sessionID string) (<-chan Event, func(), error) {
	s, err := r.get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.subscribe()
	return ch, cancel, nil
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func newCode() string {
	b := make([]byte, codeLength)
	rand.Read(b)
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}
