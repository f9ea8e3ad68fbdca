package lesson

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/pkg/ctxutil"
)

// Get returns a stored lesson.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return lesson, nil
}

// List returns one page of lessons matching the input filters.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	filter := domain.LessonFilter{
		Subject:     input.Subject,
		TargetGrade: input.TargetGrade,
		Difficulty:  input.Difficulty,
		Search:      input.Search,
	}
	if input.OnlyMine {
		filter.AuthorID = &userID
	}

	lessons, total, err := s.lessons.List(ctx, filter, domain.Page{Limit: limit, Offset: input.Offset})
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return &ListResult{Lessons: lessons, Total: total}, nil
}
