package main

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenDB(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&QuestionRow{},
		&OptionRow{},
	)
}

func IsQuestionTableEmpty(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&QuestionRow{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// DBStore serves topics from the seeded question bank.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Fetch(ctx context.Context, slug string) ([]Question, error) {
	ctx, span := tracer.Start(ctx, "DBStore.Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("quiz.topic", slug))

	var rows []QuestionRow
	err := s.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("topic = ?", slug).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load topic %s: %w", slug, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("load topic %s: %w", slug, ErrTopicNotFound)
	}

	out := make([]Question, 0, len(rows))
	for _, r := range rows {
		opts := make([]string, 0, len(r.Options))
		for _, o := range r.Options {
			opts = append(opts, o.Text)
		}
		out = append(out, Question{
			ID:          r.ExternalID,
			Question:    r.Text,
			Options:     opts,
			Answer:      r.Answer,
			Explanation: r.Explanation,
		})
	}
	return out, nil
}

// Topics lists the distinct topic slugs present in the bank.
func (s *DBStore) Topics(ctx context.Context) ([]string, error) {
	var slugs []string
	err := s.db.WithContext(ctx).Model(&QuestionRow{}).Distinct().Order("topic").Pluck("topic", &slugs).Error
	return slugs, err
}
