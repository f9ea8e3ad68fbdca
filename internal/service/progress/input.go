package progress

import (
	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/validation"
)

// UpdateInput is a partial progress update. TimeSpentDelta is capped at
// one day per update.
type UpdateInput struct {
	Status            *domain.ProgressStatus `json:"status" validate:"omitempty,oneof=not_started in_progress completed"`
	Score             *int                   `json:"score" validate:"omitempty,min=0,max=100"`
	TimeSpentDelta    int                    `json:"timeSpentDelta" validate:"min=0,max=86400"`
	CompletedSections []int                  `json:"completedSections" validate:"omitempty,max=100,dive,min=0"`
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	if err := validation.Default().Struct(i); err != nil {
		return err
	}
	if i.Status == nil && i.Score == nil && i.TimeSpentDelta == 0 && len(i.CompletedSections) == 0 {
		return domain.NewValidationError("input", "at least one field must be provided")
	}
	return nil
}

func (i UpdateInput) patch() domain.ProgressPatch {
	return domain.ProgressPatch{
		Status:            i.Status,
		Score:             i.Score,
		TimeSpentDelta:    i.TimeSpentDelta,
		CompletedSections: i.CompletedSections,
	}
}
