package main

import (
	"time"
)

// --- Question bank (sqlite) ---

type QuestionRow struct {
	ID          uint        `gorm:"primaryKey"`
	Topic       string      `gorm:"index;size:64;not null"`
	ExternalID  string      `gorm:"size:64"` // may be empty; backfilled when a set is prepared
	Position    int         `gorm:"not null"`
	Text        string      `gorm:"not null"`
	Answer      string      `gorm:"not null"`
	Explanation string
	Options     []OptionRow `gorm:"foreignKey:QuestionID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (QuestionRow) TableName() string { return "questions" }

type OptionRow struct {
	ID         uint   `gorm:"primaryKey"`
	QuestionID uint   `gorm:"index;not null"`
	Position   int    `gorm:"not null"`
	Text       string `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (OptionRow) TableName() string { return "options" }

// --- Quiz ---

// Question is one quiz item as stored per topic. Answer must equal one of
// Options exactly for the question to be scoreable.
type Question struct {
	ID          string   `json:"id,omitempty"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// QuizAnswer is the latest selection for one position of the prepared sequence.
type QuizAnswer struct {
	QuestionIndex  int    `json:"questionIndex"`
	SelectedAnswer string `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

type QuizTopic struct {
	Slug     string `json:"slug" mapstructure:"slug"`
	Title    string `json:"title" mapstructure:"title"`
	Category string `json:"category" mapstructure:"category"`
}

// QuizResult is derived from a session on demand and never stored.
type QuizResult struct {
	TotalQuestions int          `json:"totalQuestions"`
	CorrectAnswers int          `json:"correctAnswers"`
	Score          int          `json:"score"`
	AnsweredCount  int          `json:"answeredCount"`
	ScorePercent   float64      `json:"scorePercent"`
	Passed         bool         `json:"passed"`
	TimedOut       bool         `json:"timedOut"`
	TimeSpentSec   int          `json:"timeSpentSec"`
	Answers        []QuizAnswer `json:"answers"`
}

// --- Data quality ---

const (
	WarnInsufficientQuestions = "insufficient_questions"
	WarnTooFewOptions         = "too_few_options"
	WarnAnswerNotInOptions    = "answer_not_in_options"
	WarnEmptyQuestion         = "empty_question"
	WarnDuplicateID           = "duplicate_id"
)

type Warning struct {
	Kind       string `json:"kind"`
	QuestionID string `json:"questionId,omitempty"`
	Message    string `json:"message"`
	Requested  int    `json:"requested,omitempty"`
	Available  int    `json:"available,omitempty"`
}
