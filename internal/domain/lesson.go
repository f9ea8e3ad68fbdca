package domain

import (
	"time"

	"github.com/google/uuid"
)

// LessonSchemaVersion is stamped into the metadata of every generated lesson.
const LessonSchemaVersion = "1.0"

// GenerationRequest is a client request for an AI-generated lesson.
// It is treated as an immutable value once submitted.
type GenerationRequest struct {
	Subject                string       `json:"subject"`
	Topic                  string       `json:"topic"`
	TargetGrade            int          `json:"targetGrade"`
	LessonLength           LessonLength `json:"lessonLength"`
	Difficulty             Difficulty   `json:"difficulty,omitempty"`
	AdditionalInstructions string       `json:"additionalInstructions,omitempty"`
}

// LessonContent is the lesson schema every provider reply is parsed into.
type LessonContent struct {
	Title      string           `json:"title"`
	Overview   string           `json:"overview"`
	Objectives []string         `json:"objectives"`
	Sections   []LessonSection  `json:"sections"`
	Vocabulary []VocabularyItem `json:"vocabulary,omitempty"`
	Assessment []Question       `json:"assessment,omitempty"`
	Resources  []Resource       `json:"resources,omitempty"`
}

// LessonSection is one block of instructional content.
type LessonSection struct {
	Heading    string   `json:"heading"`
	Content    string   `json:"content"`
	Activities []string `json:"activities,omitempty"`
}

// VocabularyItem is a key term introduced by the lesson.
type VocabularyItem struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Question is a single assessment item.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// Resource is a supplementary link attached to a lesson.
type Resource struct {
	Type        ResourceType `json:"type"`
	Title       string       `json:"title"`
	URL         string       `json:"url,omitempty"`
	Description string       `json:"description,omitempty"`
}

// LessonMetadata records how a lesson was produced.
type LessonMetadata struct {
	Model         string     `json:"model"`
	GeneratedAt   time.Time  `json:"generatedAt"`
	SchemaVersion string     `json:"schemaVersion"`
	IsAIGenerated bool       `json:"isAIGenerated"`
	EnrichedBy    string     `json:"enrichedBy,omitempty"`
	ReviewedBy    string     `json:"reviewedBy,omitempty"`
	TokenUsage    TokenUsage `json:"tokenUsage"`
}

// Lesson is a persisted lesson record.
type Lesson struct {
	ID           uuid.UUID
	AuthorID     uuid.UUID
	Subject      string
	Topic        string
	TargetGrade  int
	LessonLength LessonLength
	Difficulty   Difficulty
	Content      LessonContent
	Metadata     LessonMetadata
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LessonFilter narrows a lesson listing. Nil fields are not applied.
type LessonFilter struct {
	AuthorID    *uuid.UUID
	Subject     *string
	TargetGrade *int
	Difficulty  *Difficulty
	Search      *string
}

// Page is an offset-based pagination window.
type Page struct {
	Limit  int
	Offset int
}
