package lesson

import (
	"strings"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/validation"
)

// GenerateInput holds the parameters of a lesson generation request.
type GenerateInput struct {
	Subject                string              `json:"subject" validate:"required,max=100"`
	Topic                  string              `json:"topic" validate:"required,max=200"`
	TargetGrade            int                 `json:"targetGrade" validate:"min=1,max=12"`
	LessonLength           domain.LessonLength `json:"lessonLength" validate:"required,oneof=short medium long"`
	Difficulty             domain.Difficulty   `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	AdditionalInstructions string              `json:"additionalInstructions" validate:"max=2000"`
}

// Validate checks all fields and collects all errors.
func (i GenerateInput) Validate() error {
	if err := validation.Default().Struct(i); err != nil {
		return err
	}

	var errs []domain.FieldError
	if strings.TrimSpace(i.Subject) == "" {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "subject must not be blank"})
	}
	if strings.TrimSpace(i.Topic) == "" {
		errs = append(errs, domain.FieldError{Field: "topic", Message: "topic must not be blank"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// request returns the normalized generation request.
func (i GenerateInput) request() domain.GenerationRequest {
	return domain.GenerationRequest{
		Subject:                strings.TrimSpace(i.Subject),
		Topic:                  strings.TrimSpace(i.Topic),
		TargetGrade:            i.TargetGrade,
		LessonLength:           i.LessonLength,
		Difficulty:             i.Difficulty,
		AdditionalInstructions: strings.TrimSpace(i.AdditionalInstructions),
	}
}

// ListInput holds lesson listing filters. Nil filters are not applied.
type ListInput struct {
	Subject     *string            `json:"subject"`
	TargetGrade *int               `json:"targetGrade" validate:"omitempty,min=1,max=12"`
	Difficulty  *domain.Difficulty `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Search      *string            `json:"search" validate:"omitempty,max=200"`
	// OnlyMine restricts the listing to lessons authored by the caller.
	OnlyMine bool `json:"onlyMine"`
	Limit    int  `json:"limit" validate:"min=0,max=100"`
	Offset   int  `json:"offset" validate:"min=0"`
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	return validation.Default().Struct(i)
}

// ListResult is one page of lessons.
type ListResult struct {
	Lessons []*domain.Lesson
	Total   int
}
