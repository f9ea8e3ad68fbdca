package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/pkg/ctxutil"
)

// Get returns the caller's progress on a lesson. A lesson the caller never
// touched is reported as not_started.
func (s *Service) Get(ctx context.Context, lessonID uuid.UUID) (*domain.Progress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if lessonID == uuid.Nil {
		return nil, domain.NewValidationError("lesson_id", "required")
	}

	p, err := s.progress.Get(ctx, userID, lessonID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	if _, err := s.lessons.GetByID(ctx, lessonID); err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return &domain.Progress{
		UserID:            userID,
		LessonID:          lessonID,
		Status:            domain.ProgressNotStarted,
		CompletedSections: []int{},
	}, nil
}

// List returns all progress records of the caller, most recent first.
func (s *Service) List(ctx context.Context) ([]*domain.Progress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return items, nil
}

// Analytics summarizes the caller's progress.
func (s *Service) Analytics(ctx context.Context) (*domain.ProgressAnalytics, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	a, err := s.progress.Analytics(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress analytics: %w", err)
	}
	if a.BySubject == nil {
		a.BySubject = []domain.SubjectStats{}
	}
	return a, nil
}
