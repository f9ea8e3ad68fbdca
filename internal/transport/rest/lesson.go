package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/service/lesson"
)

type lessonService interface {
	Generate(ctx context.Context, input lesson.GenerateInput) (*domain.Lesson, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	List(ctx context.Context, input lesson.ListInput) (*lesson.ListResult, error)
}

// LessonHandler serves lesson endpoints.
type LessonHandler struct {
	svc lessonService
	log *slog.Logger
}

// NewLessonHandler creates a LessonHandler.
func NewLessonHandler(svc lessonService, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{svc: svc, log: logger.With("handler", "lesson")}
}

type lessonResponse struct {
	ID           string                `json:"id"`
	AuthorID     string                `json:"authorId"`
	Subject      string                `json:"subject"`
	Topic        string                `json:"topic"`
	TargetGrade  int                   `json:"targetGrade"`
	LessonLength domain.LessonLength   `json:"lessonLength"`
	Difficulty   domain.Difficulty     `json:"difficulty,omitempty"`
	Content      domain.LessonContent  `json:"content"`
	Metadata     domain.LessonMetadata `json:"metadata"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

func toLessonResponse(l *domain.Lesson) lessonResponse {
	return lessonResponse{
		ID:           l.ID.String(),
		AuthorID:     l.AuthorID.String(),
		Subject:      l.Subject,
		Topic:        l.Topic,
		TargetGrade:  l.TargetGrade,
		LessonLength: l.LessonLength,
		Difficulty:   l.Difficulty,
		Content:      l.Content,
		Metadata:     l.Metadata,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// Generate handles POST /lessons/generate.
func (h *LessonHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var input lesson.GenerateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	l, err := h.svc.Generate(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toLessonResponse(l))
}

// Get handles GET /lessons/{id}.
func (h *LessonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toLessonResponse(l))
}

// List handles GET /lessons.
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	input := lesson.ListInput{
		Subject:     q.string("subject"),
		TargetGrade: q.int("targetGrade"),
		Search:      q.string("search"),
		OnlyMine:    q.bool("mine"),
		Limit:       q.intOr("limit", 0),
		Offset:      q.intOr("offset", 0),
	}
	if d := q.string("difficulty"); d != nil {
		diff := domain.Difficulty(*d)
		input.Difficulty = &diff
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

	items := make([]lessonResponse, 0, len(res.Lessons))
	for _, l := range res.Lessons {
		items = append(items, toLessonResponse(l))
	}
	writeJSON(w, http.StatusOK, listResponse{
		Status: "success",
		Data:   items,
		Total:  res.Total,
		Limit:  effectiveLimit(input.Limit, lesson.DefaultListLimit),
		Offset: input.Offset,
	})
}

func effectiveLimit(limit, def int) int {
	if limit == 0 {
		return def
	}
	return limit
}
