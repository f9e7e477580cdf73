package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// SeedFromDir loads every <slug>.json under dir into the question bank.
// Records are stored verbatim; deduplication and validation happen when a
// set is prepared. It returns the number of questions inserted.
func SeedFromDir(db *gorm.DB, dir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return 0, err
	}
	sort.Strings(files)

	total := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, path := range files {
			slug := strings.TrimSuffix(filepath.Base(path), ".json")
			if !validSlug(slug) {
				return fmt.Errorf("seed %s: invalid topic slug %q", path, slug)
			}
			n, err := seedTopic(tx, slug, path)
			if err != nil {
				return fmt.Errorf("seed %s: %w", path, err)
			}
			total += n
		}
		return nil
	})
	return total, err
}

func seedTopic(tx *gorm.DB, slug, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	qs, err := parseQuestions(raw)
	if err != nil {
		return 0, err
	}

	for i, in := range qs {
		q := QuestionRow{
			Topic:       slug,
			ExternalID:  strings.TrimSpace(in.ID),
			Position:    i + 1,
			Text:        in.Question,
			Answer:      in.Answer,
			Explanation: in.Explanation,
		}
		for j, o := range in.Options {
			q.Options = append(q.Options, OptionRow{Position: j + 1, Text: o})
		}
		if err := tx.Create(&q).Error; err != nil {
			return 0, err
		}
	}
	return len(qs), nil
}
