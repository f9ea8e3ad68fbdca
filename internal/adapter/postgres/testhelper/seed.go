package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// LessonOption customizes a seeded lesson.
type LessonOption func(*domain.Lesson)

// WithSubject sets the seeded lesson's subject.
func WithSubject(subject string) LessonOption {
	return func(l *domain.Lesson) { l.Subject = subject }
}

// WithGrade sets the seeded lesson's target grade.
func WithGrade(grade int) LessonOption {
	return func(l *domain.Lesson) { l.TargetGrade = grade }
}

// WithTopic sets the seeded lesson's topic.
func WithTopic(topic string) LessonOption {
	return func(l *domain.Lesson) { l.Topic = topic }
}

// SeedLesson inserts a minimal lesson written by authorID.
func SeedLesson(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, opts ...LessonOption) domain.Lesson {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	lesson := domain.Lesson{
		ID:           uuid.New(),
		AuthorID:     authorID,
		Subject:      "Mathematics",
		Topic:        "Topic " + suffix,
		TargetGrade:  5,
		LessonLength: domain.LessonLengthShort,
		Content: domain.LessonContent{
			Title:      "Lesson " + suffix,
			Overview:   "Overview",
			Objectives: []string{"Understand"},
			Sections:   []domain.LessonSection{{Heading: "Intro", Content: "Body"}},
		},
		Metadata: domain.LessonMetadata{
			Model:         "openai/gpt-4o-mini",
			GeneratedAt:   now,
			SchemaVersion: domain.LessonSchemaVersion,
			IsAIGenerated: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&lesson)
	}

	content, err := json.Marshal(lesson.Content)
	if err != nil {
		t.Fatalf("testhelper: SeedLesson marshal content: %v", err)
	}
	metadata, err := json.Marshal(lesson.Metadata)
	if err != nil {
		t.Fatalf("testhelper: SeedLesson marshal metadata: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO lessons (id, author_id, subject, topic, target_grade, lesson_length, title, content, metadata, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		lesson.ID, lesson.AuthorID, lesson.Subject, lesson.Topic, lesson.TargetGrade, string(lesson.LessonLength),
		lesson.Content.Title, content, metadata, lesson.CreatedAt, lesson.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLesson insert: %v", err)
	}

	return lesson
}
