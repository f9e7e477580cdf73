package main

import "testing"

func TestSnapshotWithholdsScore(t *testing.T) {
	s := newTestSession(2)
	s.Answer(0, "yes")

	snap := s.Snapshot()
	if snap.Score != nil {
		t.Fatalf("Score = %d before submission, want nil", *snap.Score)
	}
	if snap.AnsweredCount != 1 || snap.Unanswered != 1 || snap.ProgressPercentage != 50 {
		t.Errorf("snapshot counts = %d/%d/%v, want 1/1/50", snap.AnsweredCount, snap.Unanswered, snap.ProgressPercentage)
	}
	if len(snap.Selections) != 1 || snap.Selections[0].SelectedAnswer != "yes" {
		t.Errorf("Selections = %+v, want one selection of yes", snap.Selections)
	}

	s.RequestSubmit()
	s.ConfirmSubmit()
	snap = s.Snapshot()
	if snap.Score == nil || *snap.Score != 1 {
		t.Errorf("Score after submission = %v, want 1", snap.Score)
	}
}

func TestResult(t *testing.T) {
	tests := []struct {
		name        string
		picks       []string
		threshold   float64
		wantCorrect int
		wantPercent float64
		wantPassed  bool
	}{
		{
			name:        "3 of 5",
			picks:       []string{"yes", "no", "yes", "yes", "no"},
			threshold:   61,
			wantCorrect: 3,
			wantPercent: 60,
			wantPassed:  false,
		},
		{
			name:        "4 of 5",
			picks:       []string{"yes", "yes", "yes", "yes", "no"},
			threshold:   61,
			wantCorrect: 4,
			wantPercent: 80,
			wantPassed:  true,
		},
		{
			name:        "threshold is inclusive",
			picks:       []string{"yes", "no", "yes", "yes", "no"},
			threshold:   60,
			wantCorrect: 3,
			wantPercent: 60,
			wantPassed:  true,
		},
		{
			name:        "nothing answered",
			threshold:   61,
			wantCorrect: 0,
			wantPercent: 0,
			wantPassed:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(5)
			for i, p := range tt.picks {
				s.Answer(i, p)
			}
			s.RequestSubmit()
			s.ConfirmSubmit()

			r := s.Result(tt.threshold)
			if r.CorrectAnswers != tt.wantCorrect || r.Score != tt.wantCorrect {
				t.Errorf("CorrectAnswers, Score = %d, %d, want %d", r.CorrectAnswers, r.Score, tt.wantCorrect)
			}
			if r.ScorePercent != tt.wantPercent {
				t.Errorf("ScorePercent = %v, want %v", r.ScorePercent, tt.wantPercent)
			}
			if r.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", r.Passed, tt.wantPassed)
			}
			if r.TotalQuestions != 5 || r.AnsweredCount != len(tt.picks) {
				t.Errorf("Total, Answered = %d, %d, want 5, %d", r.TotalQuestions, r.AnsweredCount, len(tt.picks))
			}
		})
	}
}

func TestResultTimeSpent(t *testing.T) {
	s := newTestSession(1)
	for range 12 {
		s.Tick()
	}
	s.RequestSubmit()
	s.ConfirmSubmit()

	r := s.Result(61)
	if r.TimeSpentSec != 12 {
		t.Errorf("TimeSpentSec = %d, want 12", r.TimeSpentSec)
	}
	if r.TimedOut {
		t.Errorf("TimedOut = true, want false")
	}

	s.Restart()
	for range secondsPerQuestion {
		s.Tick()
	}
	r = s.Result(61)
	if !r.TimedOut || r.TimeSpentSec != secondsPerQuestion {
		t.Errorf("after time-up TimedOut, TimeSpentSec = %v, %d, want true, %d", r.TimedOut, r.TimeSpentSec, secondsPerQuestion)
	}
}

func TestReview(t *testing.T) {
	qs := []Question{
		{ID: "a", Question: "One?", Options: []string{"x", "y"}, Answer: "x", Explanation: "because x"},
		{ID: "b", Question: "Two?", Options: []string{"x", "y"}, Answer: "y"},
		{ID: "c", Question: "Three?", Options: []string{"x", "y"}, Answer: "x"},
	}
	s := NewSession("s1", "c1", "gdpr", qs)
	s.Answer(0, "x")
	s.Answer(1, "x")

	rows := s.Review()
	if len(rows) != 3 {
		t.Fatalf("len(Review) = %d, want 3", len(rows))
	}
	tests := []struct {
		answered, wasCorrect bool
		selected, correct    string
	}{
		{true, true, "x", "x"},
		{true, false, "x", "y"},
		{false, false, "", "x"},
	}
	for i, tt := range tests {
		r := rows[i]
		if r.QuestionIndex != i || r.QuestionID != qs[i].ID {
			t.Errorf("row %d identifies %d/%s", i, r.QuestionIndex, r.QuestionID)
		}
		if r.Answered != tt.answered || r.WasCorrect != tt.wasCorrect || r.Selected != tt.selected || r.Correct != tt.correct {
			t.Errorf("row %d = %+v, want answered=%v correct=%v selected=%q answer=%q",
				i, r, tt.answered, tt.wasCorrect, tt.selected, tt.correct)
		}
	}
	if rows[0].Explanation != "because x" {
		t.Errorf("explanation = %q, want because x", rows[0].Explanation)
	}
}

func TestQuestionDTOsHideAnswers(t *testing.T) {
	dtos := questionDTOs([]Question{{ID: "a", Question: "One?", Options: []string{"x"}, Answer: "x", Explanation: "e"}})
	if len(dtos) != 1 || dtos[0].Index != 0 || dtos[0].ID != "a" || dtos[0].Question != "One?" {
		t.Errorf("questionDTOs() = %+v", dtos)
	}
}
