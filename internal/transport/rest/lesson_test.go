package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/service/lesson"
)

func sampleLesson() *domain.Lesson {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Lesson{
		ID:           uuid.New(),
		AuthorID:     uuid.New(),
		Subject:      "Biology",
		Topic:        "Photosynthesis",
		TargetGrade:  7,
		LessonLength: domain.LessonLengthMedium,
		Content: domain.LessonContent{
			Title:    "How Plants Make Food",
			Overview: "Light to sugar.",
		},
		Metadata: domain.LessonMetadata{
			Model:         "openai/gpt-4o-mini",
			GeneratedAt:   now,
			IsAIGenerated: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestLessonHandler_Generate_OK(t *testing.T) {
	t.Parallel()

	l := sampleLesson()
	svc := &lessonServiceMock{
		GenerateFunc: func(_ context.Context, _ lesson.GenerateInput) (*domain.Lesson, error) {
			return l, nil
		},
	}
	h := NewLessonHandler(svc, discardLogger())

	body := `{"subject":"Biology","topic":"Photosynthesis","targetGrade":7,"lessonLength":"medium","additionalInstructions":"add visual aids"}`
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/lessons/generate", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string         `json:"status"`
		Data   lessonResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, l.ID.String(), resp.Data.ID)
	assert.Equal(t, "How Plants Make Food", resp.Data.Content.Title)
	assert.True(t, resp.Data.Metadata.IsAIGenerated)

	require.Len(t, svc.GenerateCalls(), 1)
	in := svc.GenerateCalls()[0].Input
	assert.Equal(t, "Photosynthesis", in.Topic)
	assert.Equal(t, 7, in.TargetGrade)
	assert.Equal(t, domain.LessonLengthMedium, in.LessonLength)
	assert.Equal(t, "add visual aids", in.AdditionalInstructions)
}

func TestLessonHandler_Generate_MalformedBody(t *testing.T) {
	t.Parallel()

	svc := &lessonServiceMock{}
	h := NewLessonHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/lessons/generate", strings.NewReader(`{"targetGrade":"seven"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.GenerateCalls())
}

func TestLessonHandler_Generate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"validation", domain.NewValidationError("targetGrade", "must be between 1 and 12"), http.StatusBadRequest},
		{"safety", &domain.SafetyRejectionError{Flags: []string{"unsafe"}}, http.StatusUnprocessableEntity},
		{"persistence", &domain.PersistenceError{Op: "lesson", Err: context.DeadlineExceeded}, http.StatusInternalServerError},
		{"provider", domain.NewProviderError(domain.CodeOperationTimeout, "openai/gpt-4o", context.DeadlineExceeded), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &lessonServiceMock{
				GenerateFunc: func(context.Context, lesson.GenerateInput) (*domain.Lesson, error) {
					return nil, tt.err
				},
			}
			rec := httptest.NewRecorder()
			NewLessonHandler(svc, discardLogger()).Generate(rec,
				httptest.NewRequest(http.MethodPost, "/lessons/generate", strings.NewReader(`{}`)))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "error", decodeError(t, rec).Status)
		})
	}
}

func TestLessonHandler_List_ParsesQuery(t *testing.T) {
	t.Parallel()

	svc := &lessonServiceMock{
		ListFunc: func(context.Context, lesson.ListInput) (*lesson.ListResult, error) {
			return &lesson.ListResult{Lessons: []*domain.Lesson{sampleLesson()}, Total: 41}, nil
		},
	}
	h := NewLessonHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet,
		"/lessons?subject=Biology&targetGrade=7&difficulty=advanced&search=cell&mine=true&offset=20", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.ListCalls(), 1)
	in := svc.ListCalls()[0].Input
	assert.Equal(t, "Biology", *in.Subject)
	assert.Equal(t, 7, *in.TargetGrade)
	assert.Equal(t, domain.DifficultyAdvanced, *in.Difficulty)
	assert.Equal(t, "cell", *in.Search)
	assert.True(t, in.OnlyMine)
	assert.Equal(t, 0, in.Limit)
	assert.Equal(t, 20, in.Offset)

	var resp struct {
		Data  []lessonResponse `json:"data"`
		Total int              `json:"total"`
		Limit int              `json:"limit"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 41, resp.Total)
	assert.Equal(t, lesson.DefaultListLimit, resp.Limit)
}

func TestLessonHandler_List_BadQuery(t *testing.T) {
	t.Parallel()

	svc := &lessonServiceMock{}
	rec := httptest.NewRecorder()
	NewLessonHandler(svc, discardLogger()).List(rec, httptest.NewRequest(http.MethodGet, "/lessons?targetGrade=seventh", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.ListCalls())
}
