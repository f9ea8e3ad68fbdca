package tutor

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/validation"
)

// StartConversationInput holds the parameters of a new conversation.
type StartConversationInput struct {
	Title    string     `json:"title" validate:"max=200"`
	LessonID *uuid.UUID `json:"lessonId"`
}

// Validate checks all fields and collects all errors.
func (i StartConversationInput) Validate() error {
	if err := validation.Default().Struct(i); err != nil {
		return err
	}
	if i.LessonID != nil && *i.LessonID == uuid.Nil {
		return domain.NewValidationError("lessonId", "lessonId must be a valid id")
	}
	return nil
}

// SendMessageInput is one learner turn.
type SendMessageInput struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// Validate checks all fields and collects all errors.
func (i SendMessageInput) Validate() error {
	if err := validation.Default().Struct(i); err != nil {
		return err
	}
	if strings.TrimSpace(i.Content) == "" {
		return domain.NewValidationError("content", "content must not be blank")
	}
	return nil
}

// ExplainInput is a one-off question outside a conversation.
type ExplainInput struct {
	Question    string            `json:"question" validate:"required,max=4000"`
	Subject     string            `json:"subject" validate:"max=100"`
	TargetGrade int               `json:"targetGrade" validate:"omitempty,min=1,max=12"`
	Difficulty  domain.Difficulty `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// Validate checks all fields and collects all errors.
func (i ExplainInput) Validate() error {
	if err := validation.Default().Struct(i); err != nil {
		return err
	}
	if strings.TrimSpace(i.Question) == "" {
		return domain.NewValidationError("question", "question must not be blank")
	}
	return nil
}

// AnalyzeImageInput asks for a teaching-oriented description of an image.
type AnalyzeImageInput struct {
	ImageURL    string `json:"imageUrl" validate:"required,url,startswith=https://,max=2048"`
	Prompt      string `json:"prompt" validate:"max=2000"`
	Subject     string `json:"subject" validate:"max=100"`
	TargetGrade int    `json:"targetGrade" validate:"omitempty,min=1,max=12"`
}

// Validate checks all fields and collects all errors.
func (i AnalyzeImageInput) Validate() error {
	return validation.Default().Struct(i)
}

// ListConversationsInput is a pagination window.
type ListConversationsInput struct {
	Limit  int `json:"limit" validate:"min=0,max=100"`
	Offset int `json:"offset" validate:"min=0"`
}

// Validate checks all fields and collects all errors.
func (i ListConversationsInput) Validate() error {
	return validation.Default().Struct(i)
}

// SendMessageResult is the outcome of one chat turn.
type SendMessageResult struct {
	UserMessage domain.ChatMessage
	Reply       domain.ChatMessage
	Explanation domain.Explanation
	Cached      bool
}
