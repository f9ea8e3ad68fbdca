package lesson

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/retry"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/router"
)

type lessonRepo interface {
	Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	List(ctx context.Context, filter domain.LessonFilter, page domain.Page) ([]*domain.Lesson, int, error)
}

type providerRegistry interface {
	For(ref llm.ModelRef) (llm.Provider, error)
}

type modelRouter interface {
	Route(task llm.TaskType, in router.Input) llm.ModelRef
	Fallback(primary llm.ModelRef) (llm.ModelRef, bool)
}

type metricsRecorder interface {
	ObserveGeneration(outcome string, d time.Duration)
	ObserveAICall(task, model, result string)
	ObserveFallback(from, to string)
	ObserveEnrichmentSkipped()
}

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Service generates, stores and lists lessons.
type Service struct {
	lessons   lessonRepo
	providers providerRegistry
	router    modelRouter
	retrier   *retry.Retrier
	metrics   metricsRecorder
	now       func() time.Time
	log       *slog.Logger
}

// NewService creates a new Lesson service. metrics may be nil.
func NewService(
	log *slog.Logger,
	lessons lessonRepo,
	providers providerRegistry,
	router modelRouter,
	retrier *retry.Retrier,
	metrics metricsRecorder,
) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		lessons:   lessons,
		providers: providers,
		router:    router,
		retrier:   retrier,
		metrics:   metrics,
		now:       time.Now,
		log:       log.With("service", "lesson"),
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveGeneration(string, time.Duration) {}
func (noopMetrics) ObserveAICall(string, string, string)    {}
func (noopMetrics) ObserveFallback(string, string)          {}
func (noopMetrics) ObserveEnrichmentSkipped()               {}
