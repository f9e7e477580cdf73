package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Prepared is the question sequence served to one session plus the
// data-quality notices raised while building it.
type Prepared struct {
	Questions []Question
	Warnings  []Warning
	Requested int
	Available int
}

// Preparer turns a raw topic list into a session's question sequence:
// dedupe, shuffle, sample, final id check.
type Preparer struct {
	rnd   RandSource
	newID func(pos int) string
}

func NewPreparer(rnd RandSource) *Preparer {
	return &Preparer{rnd: rnd, newID: newQuestionID}
}

// newQuestionID combines a time-ordered uuid (v7) with the record position.
// Unique within one Prepare call, which is all that is needed.
func newQuestionID(pos int) string {
	u, err := uuid.NewV7()
	if err != nil {
		u = uuid.New()
	}
	return fmt.Sprintf("q%d-%s", pos, u.String())
}

func (p *Preparer) Prepare(raw []Question, requested int) Prepared {
	if requested < 0 {
		requested = 0
	}

	unique := p.dedupe(raw)
	p.shuffle(unique)

	n := min(requested, len(unique))
	var warnings []Warning
	if requested > len(unique) {
		warnings = append(warnings, Warning{
			Kind:      WarnInsufficientQuestions,
			Message:   fmt.Sprintf("requested %d questions, only %d unique available", requested, len(unique)),
			Requested: requested,
			Available: len(unique),
		})
	}

	picked, dupWarnings := uniqueByID(unique[:n])
	warnings = append(warnings, dupWarnings...)
	for _, q := range picked {
		warnings = append(warnings, validateQuestion(q)...)
	}

	return Prepared{
		Questions: picked,
		Warnings:  warnings,
		Requested: requested,
		Available: len(unique),
	}
}

// dedupe keeps the first question per content key, in input order, and
// backfills missing ids.
func (p *Preparer) dedupe(raw []Question) []Question {
	seen := make(map[string]struct{}, len(raw))
	out := make([]Question, 0, len(raw))
	for i, q := range raw {
		key := contentKey(q)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if strings.TrimSpace(q.ID) == "" {
			q.ID = p.newID(i)
		}
		out = append(out, q)
	}
	return out
}

// shuffle is an in-place Fisher-Yates permutation.
func (p *Preparer) shuffle(qs []Question) {
	for i := len(qs) - 1; i > 0; i-- {
		j := p.rnd.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// contentKey normalizes question text and options (lower-cased, trimmed,
// options sorted) so reordered or re-cased copies collide.
func contentKey(q Question) string {
	opts := make([]string, len(q.Options))
	for i, o := range q.Options {
		opts[i] = normalizeText(o)
	}
	slices.Sort(opts)
	return normalizeText(q.Question) + "\x00" + strings.Join(opts, "\x00")
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func uniqueByID(qs []Question) ([]Question, []Warning) {
	seen := make(map[string]struct{}, len(qs))
	out := make([]Question, 0, len(qs))
	var warnings []Warning
	for _, q := range qs {
		if _, ok := seen[q.ID]; ok {
			warnings = append(warnings, Warning{
				Kind:       WarnDuplicateID,
				QuestionID: q.ID,
				Message:    "question dropped: id already used in this set",
			})
			continue
		}
		seen[q.ID] = struct{}{}
		out = append(out, q)
	}
	return out, warnings
}

// validateQuestion reports records that cannot be scored correctly. They are
// still served.
func validateQuestion(q Question) []Warning {
	var out []Warning
	if strings.TrimSpace(q.Question) == "" {
		out = append(out, Warning{Kind: WarnEmptyQuestion, QuestionID: q.ID, Message: "question text is empty"})
	}
	if len(q.Options) < 2 {
		out = append(out, Warning{
			Kind:       WarnTooFewOptions,
			QuestionID: q.ID,
			Message:    fmt.Sprintf("question has %d options, need at least 2", len(q.Options)),
		})
	}
	if !slices.Contains(q.Options, q.Answer) {
		out = append(out, Warning{
			Kind:       WarnAnswerNotInOptions,
			QuestionID: q.ID,
			Message:    "answer does not match any option; question can never be marked correct",
		})
	}
	return out
}
