package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/service/library"
)

type libraryService interface {
	Create(ctx context.Context, input library.CreateInput) (*domain.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	List(ctx context.Context, input library.ListInput) (*library.ListResult, error)
	Update(ctx context.Context, id uuid.UUID, input library.UpdateInput) (*domain.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LibraryHandler serves the personal book library.
type LibraryHandler struct {
	svc libraryService
	log *slog.Logger
}

// NewLibraryHandler creates a LibraryHandler.
func NewLibraryHandler(svc libraryService, logger *slog.Logger) *LibraryHandler {
	return &LibraryHandler{svc: svc, log: logger.With("handler", "library")}
}

type bookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Subject     *string   `json:"subject,omitempty"`
	GradeLevel  *int      `json:"gradeLevel,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toBookResponse(b *domain.Book) bookResponse {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return bookResponse{
		ID:          b.ID.String(),
		Title:       b.Title,
		Author:      b.Author,
		Subject:     b.Subject,
		GradeLevel:  b.GradeLevel,
		Description: b.Description,
		Tags:        tags,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// Create handles POST /books.
func (h *LibraryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input library.CreateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	b, err := h.svc.Create(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusCreated, toBookResponse(b))
}

// List handles GET /books.
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	input := library.ListInput{
		Subject:    q.string("subject"),
		GradeLevel: q.int("gradeLevel"),
		Search:     q.string("search"),
		Limit:      q.intOr("limit", 0),
		Offset:     q.intOr("offset", 0),
	}
	if err := q.err(); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	res, err := h.svc.List(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	items := make([]bookResponse, 0, len(res.Books))
	for _, b := range res.Books {
		items = append(items, toBookResponse(b))
	}
	writeJSON(w, http.StatusOK, listResponse{
		Status: "success",
		Data:   items,
		Total:  res.Total,
		Limit:  effectiveLimit(input.Limit, library.DefaultListLimit),
		Offset: input.Offset,
	})
}

// Get handles GET /books/{id}.
func (h *LibraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toBookResponse(b))
}

// Update handles PUT /books/{id}.
func (h *LibraryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var input library.UpdateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	b, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toBookResponse(b))
}

// Delete handles DELETE /books/{id}.
func (h *LibraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
