package main

import (
	"sort"
	"sync"
	"time"
)

// secondsPerQuestion is the time budget granted per prepared question.
const secondsPerQuestion = 30

type Phase string

const (
	PhaseActive         Phase = "active"
	PhaseConfirmPending Phase = "confirm_pending"
	PhaseSubmitted      Phase = "submitted"
)

// State is the session's tagged state. TimedOut is only meaningful for
// PhaseSubmitted.
type State struct {
	Phase    Phase `json:"phase"`
	TimedOut bool  `json:"timedOut"`
}

// Session is one attempt at a topic's prepared question sequence. The
// sequence is fixed for the session's lifetime; restart only resets answers
// and time.
type Session struct {
	ID        string
	ClientID  string
	Topic     string
	CreatedAt time.Time

	mu        sync.Mutex
	questions []Question
	answers   map[int]QuizAnswer
	state     State
	budget    int
	remaining int
	epoch     uint64
	seq       uint64
	lastSeen  time.Time
}

func NewSession(id, clientID, topic string, questions []Question) *Session {
	now := time.Now()
	budget := len(questions) * secondsPerQuestion
	return &Session{
		ID:        id,
		ClientID:  clientID,
		Topic:     topic,
		CreatedAt: now,
		questions: questions,
		answers:   make(map[int]QuizAnswer),
		state:     State{Phase: PhaseActive},
		budget:    budget,
		remaining: budget,
		lastSeen:  now,
	}
}

// Answer records the selection for index, replacing any earlier one. It is a
// no-op once the session is submitted.
func (s *Session) Answer(index int, selected string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	if s.state.Phase == PhaseSubmitted {
		return false, nil
	}
	if index < 0 || index >= len(s.questions) {
		return false, ErrQuestionIndex
	}
	s.answers[index] = QuizAnswer{
		QuestionIndex:  index,
		SelectedAnswer: selected,
		IsCorrect:      isCorrectAnswer(selected, s.questions[index].Answer),
	}
	return true, nil
}

// RequestSubmit moves Active to ConfirmPending and reports how many
// questions are still unanswered.
func (s *Session) RequestSubmit() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	unanswered := len(s.questions) - len(s.answers)
	if s.state.Phase != PhaseActive {
		return unanswered, false
	}
	s.state = State{Phase: PhaseConfirmPending}
	return unanswered, true
}

func (s *Session) ConfirmSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	if s.state.Phase != PhaseConfirmPending {
		return false
	}
	s.state = State{Phase: PhaseSubmitted}
	return true
}

// CancelSubmit returns to Active. The countdown is never paused, so there
// is nothing to resume.
func (s *Session) CancelSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	if s.state.Phase != PhaseConfirmPending {
		return false
	}
	s.state = State{Phase: PhaseActive}
	return true
}

// Tick consumes one time unit. Reaching zero forces submission with
// TimedOut set, discarding a pending confirmation. The second return value
// reports whether the countdown should keep running.
func (s *Session) Tick() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickLocked()
}

// tickEpoch ticks only if no restart happened since the caller's countdown
// was started. It reports whether the countdown should keep running, whether
// this tick expired the session, and whether a tick was consumed at all.
func (s *Session) tickEpoch(epoch uint64) (running, expired, ticked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || s.state.Phase == PhaseSubmitted {
		return false, false, false
	}
	st, running := s.tickLocked()
	return running, st.TimedOut, true
}

func (s *Session) tickLocked() (State, bool) {
	if s.state.Phase == PhaseSubmitted {
		return s.state, false
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.state = State{Phase: PhaseSubmitted, TimedOut: true}
		return s.state, false
	}
	return s.state, true
}

// Restart clears answers and resets the clock. The question sequence is
// kept. It returns the new countdown epoch.
func (s *Session) Restart() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	s.answers = make(map[int]QuizAnswer)
	s.remaining = s.budget
	s.state = State{Phase: PhaseActive}
	s.epoch++
	return s.epoch
}

func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Questions returns the prepared sequence. Callers must not modify it.
func (s *Session) Questions() []Question {
	return s.questions
}

func (s *Session) Answers() []QuizAnswer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answersLocked()
}

func (s *Session) answersLocked() []QuizAnswer {
	out := make([]QuizAnswer, 0, len(s.answers))
	for _, a := range s.answers {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionIndex < out[j].QuestionIndex })
	return out
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scoreLocked()
}

func (s *Session) scoreLocked() int {
	n := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

func (s *Session) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

func (s *Session) ProgressPercentage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return progressPercentage(len(s.answers), len(s.questions))
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func isCorrectAnswer(selected, answer string) bool {
	return selected == answer
}

func progressPercentage(answered, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(answered) * 100.0 / float64(total)
}
