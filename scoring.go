package main

// Snapshot is a consistent read of a session for display. Correctness is
// withheld until the session is submitted.
type Snapshot struct {
	SessionID          string         `json:"sessionId"`
	Topic              string         `json:"topic"`
	State              State          `json:"state"`
	RemainingSec       int            `json:"remainingSec"`
	DurationSec        int            `json:"durationSec"`
	TotalQuestions     int            `json:"totalQuestions"`
	AnsweredCount      int            `json:"answeredCount"`
	Unanswered         int            `json:"unanswered"`
	ProgressPercentage float64        `json:"progressPercentage"`
	Selections         []SelectionDTO `json:"selections"`
	Score              *int           `json:"score,omitempty"`
	// Seq increases with every snapshot taken of the session.
	Seq uint64 `json:"seq"`
}

type SelectionDTO struct {
	QuestionIndex  int    `json:"questionIndex"`
	SelectedAnswer string `json:"selectedAnswer"`
}

// QuestionDTO is a question as shown during the exam: no answer, no explanation.
type QuestionDTO struct {
	Index    int      `json:"index"`
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type ReviewRow struct {
	QuestionIndex int      `json:"questionIndex"`
	QuestionID    string   `json:"questionId"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Selected      string   `json:"selected,omitempty"`
	Answered      bool     `json:"answered"`
	Correct       string   `json:"correct"`
	Explanation   string   `json:"explanation,omitempty"`
	WasCorrect    bool     `json:"wasCorrect"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := s.answersLocked()
	sel := make([]SelectionDTO, 0, len(answers))
	for _, a := range answers {
		sel = append(sel, SelectionDTO{QuestionIndex: a.QuestionIndex, SelectedAnswer: a.SelectedAnswer})
	}
	snap := Snapshot{
		SessionID:          s.ID,
		Topic:              s.Topic,
		State:              s.state,
		RemainingSec:       s.remaining,
		DurationSec:        s.budget,
		TotalQuestions:     len(s.questions),
		AnsweredCount:      len(answers),
		Unanswered:         len(s.questions) - len(answers),
		ProgressPercentage: progressPercentage(len(answers), len(s.questions)),
		Selections:         sel,
	}
	s.seq++
	snap.Seq = s.seq
	if s.state.Phase == PhaseSubmitted {
		score := s.scoreLocked()
		snap.Score = &score
	}
	return snap
}

// Result scores the session against passThreshold (percent).
func (s *Session) Result(passThreshold float64) QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.questions)
	correct := s.scoreLocked()
	percent := 0.0
	if total > 0 {
		percent = float64(correct) * 100.0 / float64(total)
	}
	return QuizResult{
		TotalQuestions: total,
		CorrectAnswers: correct,
		Score:          correct,
		AnsweredCount:  len(s.answers),
		ScorePercent:   percent,
		Passed:         percent >= passThreshold,
		TimedOut:       s.state.TimedOut,
		TimeSpentSec:   s.budget - s.remaining,
		Answers:        s.answersLocked(),
	}
}

// Review pairs each question with the recorded selection, in sequence order.
func (s *Session) Review() []ReviewRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]ReviewRow, 0, len(s.questions))
	for i, q := range s.questions {
		a, ok := s.answers[i]
		rows = append(rows, ReviewRow{
			QuestionIndex: i,
			QuestionID:    q.ID,
			Question:      q.Question,
			Options:       q.Options,
			Selected:      a.SelectedAnswer,
			Answered:      ok,
			Correct:       q.Answer,
			Explanation:   q.Explanation,
			WasCorrect:    ok && a.IsCorrect,
		})
	}
	return rows
}

func questionDTOs(qs []Question) []QuestionDTO {
	out := make([]QuestionDTO, 0, len(qs))
	for i, q := range qs {
		out = append(out, QuestionDTO{Index: i, ID: q.ID, Question: q.Question, Options: q.Options})
	}
	return out
}
