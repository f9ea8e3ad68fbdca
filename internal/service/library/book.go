package library

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/pkg/ctxutil"
)

// Create adds a book to the caller's library.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Book, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	book, err := s.books.Create(ctx, &domain.Book{
		ID:          uuid.New(),
		OwnerID:     userID,
		Title:       strings.TrimSpace(input.Title),
		Author:      strings.TrimSpace(input.Author),
		Subject:     trimPtr(input.Subject),
		GradeLevel:  input.GradeLevel,
		Description: trimPtr(input.Description),
		Tags:        normalizeTags(input.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.log.InfoContext(ctx, "book created",
		slog.String("user_id", userID.String()),
		slog.String("book_id", book.ID.String()),
	)
	return book, nil
}

// Get returns one of the caller's books.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	book, err := s.books.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// List returns a filtered page of the caller's books.
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

	filter := domain.BookFilter{
		Subject:    normalizedPtr(input.Subject),
		GradeLevel: input.GradeLevel,
		Search:     trimPtr(input.Search),
	}
	books, total, err := s.books.List(ctx, userID, filter, domain.Page{Limit: limit, Offset: input.Offset})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return &ListResult{Books: books, Total: total}, nil
}

// Update applies a partial update to one of the caller's books.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Book, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	book, err := s.books.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	if input.Title != nil {
		book.Title = strings.TrimSpace(*input.Title)
	}
	if input.Author != nil {
		book.Author = strings.TrimSpace(*input.Author)
	}
	if input.Subject != nil {
		book.Subject = trimPtr(input.Subject)
	}
	if input.GradeLevel != nil {
		book.GradeLevel = input.GradeLevel
	}
	if input.Description != nil {
		book.Description = trimPtr(input.Description)
	}
	if input.Tags != nil {
		book.Tags = normalizeTags(input.Tags)
	}
	book.UpdatedAt = s.now().UTC()

	updated, err := s.books.Update(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.log.InfoContext(ctx, "book updated",
		slog.String("user_id", userID.String()),
		slog.String("book_id", id.String()),
	)
	return updated, nil
}

// Delete removes one of the caller's books.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.books.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.log.InfoContext(ctx, "book deleted",
		slog.String("user_id", userID.String()),
		slog.String("book_id", id.String()),
	)
	return nil
}
