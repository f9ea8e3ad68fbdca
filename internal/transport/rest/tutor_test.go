package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/service/tutor"
)

func TestTutorHandler_Explain(t *testing.T) {
	t.Parallel()

	var got tutor.ExplainInput
	svc := &tutorServiceMock{
		ExplainFunc: func(_ context.Context, in tutor.ExplainInput) (domain.ProviderResponse[domain.Explanation], error) {
			got = in
			return domain.ProviderResponse[domain.Explanation]{
				Payload: domain.Explanation{Explanation: "Because light bends.", KeyPoints: []string{"refraction"}},
				Model:   "openai/gpt-4o-mini",
				Cached:  true,
			}, nil
		},
	}
	rec := httptest.NewRecorder()
	NewTutorHandler(svc, discardLogger()).Explain(rec, httptest.NewRequest(http.MethodPost, "/ai/explain",
		strings.NewReader(`{"question":"Why is the sky blue?","subject":"Physics","targetGrade":6}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Why is the sky blue?", got.Question)
	assert.Equal(t, 6, got.TargetGrade)

	var resp struct {
		Data domain.ProviderResponse[domain.Explanation] `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Because light bends.", resp.Data.Payload.Explanation)
	assert.True(t, resp.Data.Cached)
}

func TestTutorHandler_AnalyzeImage_NotSupported(t *testing.T) {
	t.Parallel()

	svc := &tutorServiceMock{
		AnalyzeImageFunc: func(context.Context, tutor.AnalyzeImageInput) (domain.ProviderResponse[domain.ImageAnalysis], error) {
			return domain.ProviderResponse[domain.ImageAnalysis]{}, fmt.Errorf("openai: %w", domain.ErrNotSupported)
		},
	}
	rec := httptest.NewRecorder()
	NewTutorHandler(svc, discardLogger()).AnalyzeImage(rec, httptest.NewRequest(http.MethodPost, "/ai/analyze-image",
		strings.NewReader(`{"imageUrl":"https://example.com/cell.png"}`)))

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestTutorHandler_StartConversation(t *testing.T) {
	t.Parallel()

	lessonID := uuid.New()
	svc := &tutorServiceMock{
		StartConversationFunc: func(_ context.Context, in tutor.StartConversationInput) (*domain.Conversation, error) {
			return &domain.Conversation{ID: uuid.New(), Title: "Fractions", LessonID: in.LessonID, Messages: []domain.ChatMessage{}}, nil
		},
	}
	rec := httptest.NewRecorder()
	NewTutorHandler(svc, discardLogger()).StartConversation(rec, httptest.NewRequest(http.MethodPost, "/chat/conversations",
		strings.NewReader(fmt.Sprintf(`{"lessonId":%q}`, lessonID))))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Data conversationResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Data.LessonID)
	assert.Equal(t, lessonID.String(), *resp.Data.LessonID)
	assert.Equal(t, "Fractions", resp.Data.Title)
}

func TestTutorHandler_ListConversations(t *testing.T) {
	t.Parallel()

	var got tutor.ListConversationsInput
	svc := &tutorServiceMock{
		ListConversationsFunc: func(_ context.Context, in tutor.ListConversationsInput) ([]*domain.Conversation, int, error) {
			got = in
			return []*domain.Conversation{{ID: uuid.New(), Title: "a"}, {ID: uuid.New(), Title: "b"}}, 12, nil
		},
	}
	rec := httptest.NewRecorder()
	NewTutorHandler(svc, discardLogger()).ListConversations(rec, httptest.NewRequest(http.MethodGet, "/chat/conversations?limit=2&offset=4", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tutor.ListConversationsInput{Limit: 2, Offset: 4}, got)

	var resp struct {
		Data  []conversationResponse `json:"data"`
		Total int                    `json:"total"`
		Limit int                    `json:"limit"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 12, resp.Total)
	assert.Equal(t, 2, resp.Limit)
	assert.Nil(t, resp.Data[0].Messages)
}

func TestTutorHandler_SendMessage(t *testing.T) {
	t.Parallel()

	convID := uuid.New()
	now := time.Now().UTC()
	svc := &tutorServiceMock{
		SendMessageFunc: func(_ context.Context, id uuid.UUID, in tutor.SendMessageInput) (*tutor.SendMessageResult, error) {
			require.Equal(t, convID, id)
			return &tutor.SendMessageResult{
				UserMessage: domain.ChatMessage{Role: domain.ChatRoleUser, Content: in.Content, CreatedAt: now},
				Reply:       domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: "A fraction is a part of a whole.", Model: "openai/gpt-4o-mini", CreatedAt: now},
				Explanation: domain.Explanation{Explanation: "A fraction is a part of a whole."},
			}, nil
		},
	}
	req := withPath(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":"What is a fraction?"}`)), convID.String())
	rec := httptest.NewRecorder()
	NewTutorHandler(svc, discardLogger()).SendMessage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data sendMessageResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "What is a fraction?", resp.Data.UserMessage.Content)
	assert.Equal(t, domain.ChatRoleAssistant, resp.Data.Reply.Role)
	assert.Equal(t, "openai/gpt-4o-mini", resp.Data.Reply.Model)
}

func TestTutorHandler_SendMessage_ProviderFailure(t *testing.T) {
	t.Parallel()

	svc := &tutorServiceMock{
		SendMessageFunc: func(context.Context, uuid.UUID, tutor.SendMessageInput) (*tutor.SendMessageResult, error) {
			return nil, domain.NewProviderError(domain.CodeNetworkError, "openai/gpt-4o-mini", context.DeadlineExceeded)
		},
	}
	req := withPath(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":"hi"}`)), uuid.NewString())
	rec := httptest.NewRecorder()
	NewTutorHandler(svc, discardLogger()).SendMessage(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "NETWORK_ERROR", decodeError(t, rec).Code)
}

func TestTutorHandler_GetAndDeleteConversation(t *testing.T) {
	t.Parallel()

	convID := uuid.New()
	svc := &tutorServiceMock{
		GetConversationFunc: func(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
			return &domain.Conversation{ID: id, Messages: []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "hi"}}}, nil
		},
		DeleteConversationFunc: func(_ context.Context, id uuid.UUID) error {
			if id != convID {
				return domain.ErrNotFound
			}
			return nil
		},
	}
	h := NewTutorHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.GetConversation(rec, withPath(httptest.NewRequest(http.MethodGet, "/", nil), convID.String()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"content":"hi"`)

	rec = httptest.NewRecorder()
	h.DeleteConversation(rec, withPath(httptest.NewRequest(http.MethodDelete, "/", nil), convID.String()))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.DeleteConversation(rec, withPath(httptest.NewRequest(http.MethodDelete, "/", nil), uuid.NewString()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
