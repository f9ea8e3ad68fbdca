package domain

import (
	"time"

	"github.com/google/uuid"
)

// Progress is a learner's state for one lesson.
type Progress struct {
	UserID            uuid.UUID
	LessonID          uuid.UUID
	Status            ProgressStatus
	Score             *int
	TimeSpentSeconds  int
	CompletedSections []int
	LastAccessedAt    time.Time
	CompletedAt       *time.Time
}

// ProgressPatch is a partial update applied to a Progress row.
// TimeSpentDelta is added to the stored total.
type ProgressPatch struct {
	Status            *ProgressStatus
	Score             *int
	TimeSpentDelta    int
	CompletedSections []int
}

// SubjectStats aggregates progress for one subject.
type SubjectStats struct {
	Subject      string   `json:"subject"`
	Lessons      int      `json:"lessons"`
	Completed    int      `json:"completed"`
	AverageScore *float64 `json:"averageScore,omitempty"`
}

// ProgressAnalytics summarizes a learner's activity.
type ProgressAnalytics struct {
	TotalLessons     int            `json:"totalLessons"`
	Completed        int            `json:"completed"`
	InProgress       int            `json:"inProgress"`
	AverageScore     *float64       `json:"averageScore,omitempty"`
	TotalTimeSeconds int            `json:"totalTimeSeconds"`
	BySubject        []SubjectStats `json:"bySubject"`
}
