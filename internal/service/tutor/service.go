// Package tutor is the chat tutor: conversations backed by the explanation
// model, one-off explanations and image analysis.
package tutor

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

type conversationRepo interface {
	Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Conversation, error)
	List(ctx context.Context, userID uuid.UUID, page domain.Page) ([]*domain.Conversation, int, error)
	AppendMessages(ctx context.Context, userID, id uuid.UUID, msgs ...domain.ChatMessage) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type lessonRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
}

type providerRegistry interface {
	For(ref llm.ModelRef) (llm.Provider, error)
}

type modelRouter interface {
	Route(task llm.TaskType, in router.Input) llm.ModelRef
}

const (
	DefaultHistorySize = 10
	DefaultListLimit   = 20
	defaultTitle       = "New conversation"
)

// Service provides tutor operations for the authenticated user.
type Service struct {
	conversations conversationRepo
	lessons       lessonRepo
	providers     providerRegistry
	router        modelRouter
	retrier       *retry.Retrier
	historySize   int
	now           func() time.Time
	log           *slog.Logger
}

// NewService creates a new Tutor service. historySize is the number of
// previous messages sent as context with each chat turn.
func NewService(
	log *slog.Logger,
	conversations conversationRepo,
	lessons lessonRepo,
	providers providerRegistry,
	router modelRouter,
	retrier *retry.Retrier,
	historySize int,
) *Service {
	if historySize < 0 {
		historySize = DefaultHistorySize
	}
	return &Service{
		conversations: conversations,
		lessons:       lessons,
		providers:     providers,
		router:        router,
		retrier:       retrier,
		historySize:   historySize,
		now:           time.Now,
		log:           log.With("service", "tutor"),
	}
}
