package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/pkg/ctxutil"
)

// Update applies a partial update to the caller's progress on a lesson,
// creating the record on first use.
func (s *Service) Update(ctx context.Context, lessonID uuid.UUID, input UpdateInput) (*domain.Progress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if lessonID == uuid.Nil {
		return nil, domain.NewValidationError("lesson_id", "required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.lessons.GetByID(ctx, lessonID); err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	var saved *domain.Progress
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.progress.Get(txCtx, userID, lessonID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			current = &domain.Progress{UserID: userID, LessonID: lessonID, Status: domain.ProgressNotStarted}
		case err != nil:
			return fmt.Errorf("get progress: %w", err)
		}

		next, err := apply(*current, input.patch(), s.now().UTC())
		if err != nil {
			return err
		}

		saved, err = s.progress.Upsert(txCtx, &next)
		if err != nil {
			return fmt.Errorf("upsert progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "progress updated",
		slog.String("user_id", userID.String()),
		slog.String("lesson_id", lessonID.String()),
		slog.String("status", saved.Status.String()),
	)
	return saved, nil
}

// apply returns p with patch applied.
//
// Status moves forward only, except completed -> in_progress for a
// revisit. Recording time or sections on a not_started lesson starts it.
// Reaching completed stamps CompletedAt; leaving it clears the stamp.
func apply(p domain.Progress, patch domain.ProgressPatch, now time.Time) (domain.Progress, error) {
	status := p.Status
	if patch.Status != nil {
		if !canTransition(p.Status, *patch.Status) {
			return p, domain.NewValidationError("status",
				fmt.Sprintf("cannot change from %s to %s", p.Status, *patch.Status))
		}
		status = *patch.Status
	}
	if status == domain.ProgressNotStarted && (patch.TimeSpentDelta > 0 || len(patch.CompletedSections) > 0) {
		status = domain.ProgressInProgress
	}

	if patch.Score != nil {
		score := *patch.Score
		p.Score = &score
	}
	p.TimeSpentSeconds += patch.TimeSpentDelta
	p.CompletedSections = mergeSections(p.CompletedSections, patch.CompletedSections)
	p.LastAccessedAt = now

	switch {
	case status == domain.ProgressCompleted && p.CompletedAt == nil:
		p.CompletedAt = &now
	case status != domain.ProgressCompleted:
		p.CompletedAt = nil
	}
	p.Status = status
	return p, nil
}

func canTransition(from, to domain.ProgressStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case domain.ProgressNotStarted:
		return to == domain.ProgressInProgress || to == domain.ProgressCompleted
	case domain.ProgressInProgress:
		return to == domain.ProgressCompleted
	case domain.ProgressCompleted:
		return to == domain.ProgressInProgress
	}
	return false
}

// mergeSections returns the sorted union of both section index lists.
func mergeSections(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.Sort(out)
	return slices.Compact(out)
}
