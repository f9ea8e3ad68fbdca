package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/service/progress"
)

type progressService interface {
	Get(ctx context.Context, lessonID uuid.UUID) (*domain.Progress, error)
	List(ctx context.Context) ([]*domain.Progress, error)
	Analytics(ctx context.Context) (*domain.ProgressAnalytics, error)
	Update(ctx context.Context, lessonID uuid.UUID, input progress.UpdateInput) (*domain.Progress, error)
}

// ProgressHandler serves learner progress endpoints.
type ProgressHandler struct {
	svc progressService
	log *slog.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(svc progressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, log: logger.With("handler", "progress")}
}

type progressResponse struct {
	LessonID          string                `json:"lessonId"`
	Status            domain.ProgressStatus `json:"status"`
	Score             *int                  `json:"score,omitempty"`
	TimeSpentSeconds  int                   `json:"timeSpentSeconds"`
	CompletedSections []int                 `json:"completedSections"`
	LastAccessedAt    time.Time             `json:"lastAccessedAt"`
	CompletedAt       *time.Time            `json:"completedAt,omitempty"`
}

func toProgressResponse(p *domain.Progress) progressResponse {
	sections := p.CompletedSections
	if sections == nil {
		sections = []int{}
	}
	return progressResponse{
		LessonID:          p.LessonID.String(),
		Status:            p.Status,
		Score:             p.Score,
		TimeSpentSeconds:  p.TimeSpentSeconds,
		CompletedSections: sections,
		LastAccessedAt:    p.LastAccessedAt,
		CompletedAt:       p.CompletedAt,
	}
}

// Update handles PUT /lessons/{id}/progress.
func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var input progress.UpdateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	p, err := h.svc.Update(r.Context(), lessonID, input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toProgressResponse(p))
}

// Get handles GET /lessons/{id}/progress.
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	p, err := h.svc.Get(r.Context(), lessonID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toProgressResponse(p))
}

// List handles GET /progress.
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]progressResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toProgressResponse(p))
	}
	writeData(w, http.StatusOK, out)
}

// Analytics handles GET /progress/analytics.
func (h *ProgressHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Analytics(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, a)
}
