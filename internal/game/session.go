package game

import (
	"context"
	"errors"
	"math"
	"sync"
)

// Session is one live quiz being played by teams of players. All state is
// guarded by mu; every operation that reads then writes (advancing the
// question counter, recording an answer) runs as a single critical section,
// so two concurrent advance calls cannot double-score a question.
type Session struct {
	id     string
	name   string
	quizID string
	code   string

	mu             sync.Mutex
	phase          Phase
	questionNumber int
	teams          []*Team
	answers        map[string]map[string]Answer // question id -> player id -> answer
	subs           map[chan Event]struct{}
}

func newSession(id, name, quizID, code string) *Session {
	return &Session{
		id:      id,
		name:    name,
		quizID:  quizID,
		code:    code,
		phase:   PhaseNotStarted,
		answers: make(map[string]map[string]Answer),
		subs:    make(map[chan Event]struct{}),
	}
}

// ID returns the session's internal identifier.
func (s *Session) ID() string { return s.id }

// Code returns the session's public join code.
func (s *Session) Code() string { return s.code }

func (s *Session) createTeam(name string) TeamInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	team := &Team{ID: newID(), Name: name}
	s.teams = append(s.teams, team)
	return TeamInfo{ID: team.ID, Name: team.Name}
}

func (s *Session) joinTeam(teamID, playerName string) (PlayerInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var team *Team
	for _, t := range s.teams {
		if t.ID == teamID {
			team = t
			break
		}
	}
	if team == nil {
		return PlayerInfo{}, ErrTeamNotFound
	}

	player := &Player{ID: newID(), Name: playerName}
	team.Players = append(team.Players, player)
	return PlayerInfo{ID: player.ID, Name: player.Name}, nil
}

// submitAnswer stores one answer per (question, player); a resubmission for
// the same pair overwrites the earlier one.
func (s *Session) submitAnswer(playerID, questionID string, answer Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseQuestioning {
		return ErrInvalidPhase
	}
	if s.findPlayerLocked(playerID) == nil {
		return ErrPlayerNotFound
	}

	byPlayer := s.answers[questionID]
	if byPlayer == nil {
		byPlayer = make(map[string]Answer)
		s.answers[questionID] = byPlayer
	}
	byPlayer[playerID] = answer
	return nil
}

func (s *Session) findPlayerLocked(playerID string) *Player {
	for _, t := range s.teams {
		for _, p := range t.Players {
			if p.ID == playerID {
				return p
			}
		}
	}
	return nil
}

// advance moves the session to its next phase and publishes the matching
// event. From not-started or results it serves the next question, or ends
// the game when none remains. From questioning it scores every stored
// answer against the correct option or value and enters results. On ended
// it is a no-op. The mutex is held across the question fetch so the
// increment-then-fetch pair is atomic with respect to other operations.
func (s *Session) advance(ctx context.Context, source QuestionSource) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseNotStarted, PhaseResults:
		s.questionNumber++
		q, err := source.QuestionByQuizAndOrder(ctx, s.quizID, s.questionNumber)
		if errors.Is(err, ErrQuestionNotFound) {
			s.phase = PhaseEnded
			s.publishLocked(Event{Type: EventEnd, Teams: s.teamScoresLocked()})
			return s.questionNumber, nil
		}
		if err != nil {
			s.questionNumber--
			return 0, err
		}

		s.phase = PhaseQuestioning
		ev := Event{
			Type:         EventNewQuestion,
			Question:     q.Text,
			QuestionID:   q.ID,
			QuestionType: q.Type,
		}
		if q.Type == TypeRange {
			min, max := q.Min, q.Max
			ev.Min, ev.Max = &min, &max
		} else {
			ev.Options = make([]EventOption, 0, len(q.Options))
			for _, o := range q.Options {
				ev.Options = append(ev.Options, EventOption{ID: o.ID, Text: o.Text})
			}
		}
		s.publishLocked(ev)
		return s.questionNumber, nil

	case PhaseQuestioning:
		q, err := source.QuestionByQuizAndOrder(ctx, s.quizID, s.questionNumber)
		if err != nil {
			// Question deleted mid-game: abort without touching phase or scores.
			return 0, err
		}

		ev := Event{Type: EventCorrectOption, QuestionID: q.ID}
		if q.Type == TypeRange {
			s.scoreRangeLocked(q)
			correct := q.CorrectValue
			ev.CorrectValue = &correct
		} else {
			correctID := ""
			for _, o := range q.Options {
				if o.Correct {
					correctID = o.ID
					break
				}
			}
			if correctID == "" {
				return 0, ErrQuestionNotFound
			}
			s.scoreChoiceLocked(q.ID, correctID)
			ev.OptionID = correctID
		}

		s.phase = PhaseResults
		ev.Teams = s.teamScoresLocked()
		s.publishLocked(ev)
		return s.questionNumber, nil
	}

	// ended (and the reserved started phase): nothing to do.
	return s.questionNumber, nil
}

func (s *Session) scoreChoiceLocked(questionID, correctOptionID string) {
	byPlayer := s.answers[questionID]
	for _, t := range s.teams {
		for _, p := range t.Players {
			if a, ok := byPlayer[p.ID]; ok && !a.HasValue && a.OptionID == correctOptionID {
				p.Score++
			}
		}
	}
}

func (s *Session) scoreRangeLocked(q Question) {
	tolerance := (q.Max - q.Min) * rangeTolerance
	byPlayer := s.answers[q.ID]
	for _, t := range s.teams {
		for _, p := range t.Players {
			if a, ok := byPlayer[p.ID]; ok && a.HasValue && math.Abs(a.Value-q.CorrectValue) <= tolerance {
				p.Score++
			}
		}
	}
}

// subscribe registers a listener for future events. The returned cancel
// func detaches and closes the channel; it is safe to call more than once.
func (s *Session) subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) publishLocked(ev Event) {
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// Drop if subscriber is slow.
		}
	}
}

func (s *Session) teamScoresLocked() []TeamScore {
	teams := make([]TeamScore, 0, len(s.teams))
	for _, t := range s.teams {
		ts := TeamScore{ID: t.ID, Name: t.Name, Players: make([]PlayerScore, 0, len(t.Players))}
		for _, p := range t.Players {
			ts.Score += p.Score
			ts.Players = append(ts.Players, PlayerScore{ID: p.ID, Name: p.Name, Score: p.Score})
		}
		teams = append(teams, ts)
	}
	return teams
}

func (s *Session) summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := 0
	for _, t := range s.teams {
		players += len(t.Players)
	}
	return Summary{
		ID:             s.id,
		Name:           s.name,
		QuizID:         s.quizID,
		Code:           s.code,
		Phase:          s.phase,
		QuestionNumber: s.questionNumber,
		TeamCount:      len(s.teams),
		PlayerCount:    players,
	}
}

func (s *Session) detail() Detail {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Detail{
		ID:             s.id,
		Name:           s.name,
		QuizID:         s.quizID,
		Code:           s.code,
		Phase:          s.phase,
		QuestionNumber: s.questionNumber,
		Teams:          s.teamScoresLocked(),
	}
}

func (s *Session) publicDetail() PublicDetail {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams := make([]PublicTeam, 0, len(s.teams))
	for _, t := range s.teams {
		teams = append(teams, PublicTeam{ID: t.ID, Name: t.Name, PlayerCount: len(t.Players)})
	}
	return PublicDetail{
		ID:    s.id,
		Name:  s.name,
		Code:  s.code,
		Phase: s.phase,
		Teams: teams,
	}
}
