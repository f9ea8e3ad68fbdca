// Package progress tracks learner progress per lesson and aggregates it
// into analytics.
package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

type progressRepo interface {
	Get(ctx context.Context, userID, lessonID uuid.UUID) (*domain.Progress, error)
	Upsert(ctx context.Context, p *domain.Progress) (*domain.Progress, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error)
	Analytics(ctx context.Context, userID uuid.UUID) (*domain.ProgressAnalytics, error)
}

type lessonRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides progress operations for the authenticated user.
type Service struct {
	progress progressRepo
	lessons  lessonRepo
	tx       txManager
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new Progress service.
func NewService(
	log *slog.Logger,
	progress progressRepo,
	lessons lessonRepo,
	tx txManager,
) *Service {
	return &Service{
		progress: progress,
		lessons:  lessons,
		tx:       tx,
		now:      time.Now,
		log:      log.With("service", "progress"),
	}
}
