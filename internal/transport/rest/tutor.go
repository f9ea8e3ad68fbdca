package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/service/tutor"
)

type tutorService interface {
	Explain(ctx context.Context, input tutor.ExplainInput) (domain.ProviderResponse[domain.Explanation], error)
	AnalyzeImage(ctx context.Context, input tutor.AnalyzeImageInput) (domain.ProviderResponse[domain.ImageAnalysis], error)
	StartConversation(ctx context.Context, input tutor.StartConversationInput) (*domain.Conversation, error)
	GetConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	ListConversations(ctx context.Context, input tutor.ListConversationsInput) ([]*domain.Conversation, int, error)
	SendMessage(ctx context.Context, conversationID uuid.UUID, input tutor.SendMessageInput) (*tutor.SendMessageResult, error)
	DeleteConversation(ctx context.Context, id uuid.UUID) error
}

// TutorHandler serves the AI tutor endpoints: one-off explanations, image
// analysis and chat conversations.
type TutorHandler struct {
	svc tutorService
	log *slog.Logger
}

// NewTutorHandler creates a TutorHandler.
func NewTutorHandler(svc tutorService, logger *slog.Logger) *TutorHandler {
	return &TutorHandler{svc: svc, log: logger.With("handler", "tutor")}
}

type messageResponse struct {
	Role      domain.ChatRole `json:"role"`
	Content   string          `json:"content"`
	Model     string          `json:"model,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type conversationResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	LessonID  *string           `json:"lessonId,omitempty"`
	Messages  []messageResponse `json:"messages,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type sendMessageResponse struct {
	UserMessage messageResponse    `json:"userMessage"`
	Reply       messageResponse    `json:"reply"`
	Explanation domain.Explanation `json:"explanation"`
	Cached      bool               `json:"cached"`
}

func toMessageResponse(m domain.ChatMessage) messageResponse {
	return messageResponse{Role: m.Role, Content: m.Content, Model: m.Model, CreatedAt: m.CreatedAt}
}

func toConversationResponse(c *domain.Conversation) conversationResponse {
	resp := conversationResponse{
		ID:        c.ID.String(),
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.LessonID != nil {
		id := c.LessonID.String()
		resp.LessonID = &id
	}
	if c.Messages != nil {
		resp.Messages = make([]messageResponse, 0, len(c.Messages))
		for _, m := range c.Messages {
			resp.Messages = append(resp.Messages, toMessageResponse(m))
		}
	}
	return resp
}

// Explain handles POST /ai/explain.
func (h *TutorHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var input tutor.ExplainInput
	if !decodeJSON(w, r, &input) {
		return
	}

	resp, err := h.svc.Explain(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, resp)
}

// AnalyzeImage handles POST /ai/analyze-image.
func (h *TutorHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	var input tutor.AnalyzeImageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	resp, err := h.svc.AnalyzeImage(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, resp)
}

// StartConversation handles POST /chat/conversations.
func (h *TutorHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	var input tutor.StartConversationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	conv, err := h.svc.StartConversation(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusCreated, toConversationResponse(conv))
}

// ListConversations handles GET /chat/conversations.
func (h *TutorHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	input := tutor.ListConversationsInput{
		Limit:  q.intOr("limit", 0),
		Offset: q.intOr("offset", 0),
	}
	if err := q.err(); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	convs, total, err := h.svc.ListConversations(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	items := make([]conversationResponse, 0, len(convs))
	for _, c := range convs {
		items = append(items, toConversationResponse(c))
	}
	writeJSON(w, http.StatusOK, listResponse{
		Status: "success",
		Data:   items,
		Total:  total,
		Limit:  effectiveLimit(input.Limit, tutor.DefaultListLimit),
		Offset: input.Offset,
	})
}

// GetConversation handles GET /chat/conversations/{id}.
func (h *TutorHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	conv, err := h.svc.GetConversation(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toConversationResponse(conv))
}

// SendMessage handles POST /chat/conversations/{id}/messages.
func (h *TutorHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var input tutor.SendMessageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	res, err := h.svc.SendMessage(r.Context(), id, input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, sendMessageResponse{
		UserMessage: toMessageResponse(res.UserMessage),
		Reply:       toMessageResponse(res.Reply),
		Explanation: res.Explanation,
		Cached:      res.Cached,
	})
}

// DeleteConversation handles DELETE /chat/conversations/{id}.
func (h *TutorHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteConversation(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
