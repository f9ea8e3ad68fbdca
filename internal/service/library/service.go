// Package library manages the per-user book library.
package library

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type bookRepo interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Book, error)
	List(ctx context.Context, ownerID uuid.UUID, filter domain.BookFilter, page domain.Page) ([]*domain.Book, int, error)
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Service provides library operations scoped to the authenticated user.
type Service struct {
	books bookRepo
	now   func() time.Time
	log   *slog.Logger
}

// NewService creates a new Library service.
func NewService(log *slog.Logger, books bookRepo) *Service {
	return &Service{
		books: books,
		now:   time.Now,
		log:   log.With("service", "library"),
	}
}
