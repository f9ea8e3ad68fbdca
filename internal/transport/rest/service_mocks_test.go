package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/service/lesson"
	"github.com/heartmarshall/lessonforge-backend/internal/service/library"
	"github.com/heartmarshall/lessonforge-backend/internal/service/progress"
	"github.com/heartmarshall/lessonforge-backend/internal/service/tutor"
)

var (
	_ lessonService   = &lessonServiceMock{}
	_ progressService = &progressServiceMock{}
	_ tutorService    = &tutorServiceMock{}
	_ libraryService  = &libraryServiceMock{}
)

// ---------------------------------------------------------------------------
// lessonService
// ---------------------------------------------------------------------------

type lessonServiceMock struct {
	GenerateFunc func(ctx context.Context, input lesson.GenerateInput) (*domain.Lesson, error)
	GetFunc      func(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	ListFunc     func(ctx context.Context, input lesson.ListInput) (*lesson.ListResult, error)

	calls struct {
		Generate []struct {
			Input lesson.GenerateInput
		}
		List []struct {
			Input lesson.ListInput
		}
	}
	lockGenerate sync.RWMutex
	lockList     sync.RWMutex
}

func (mock *lessonServiceMock) Generate(ctx context.Context, input lesson.GenerateInput) (*domain.Lesson, error) {
	if mock.GenerateFunc == nil {
		panic("lessonServiceMock.GenerateFunc: method is nil but lessonService.Generate was just called")
	}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, struct{ Input lesson.GenerateInput }{Input: input})
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, input)
}

func (mock *lessonServiceMock) GenerateCalls() []struct{ Input lesson.GenerateInput } {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}

func (mock *lessonServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	if mock.GetFunc == nil {
		panic("lessonServiceMock.GetFunc: method is nil but lessonService.Get was just called")
	}
	return mock.GetFunc(ctx, id)
}

func (mock *lessonServiceMock) List(ctx context.Context, input lesson.ListInput) (*lesson.ListResult, error) {
	if mock.ListFunc == nil {
		panic("lessonServiceMock.ListFunc: method is nil but lessonService.List was just called")
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, struct{ Input lesson.ListInput }{Input: input})
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *lessonServiceMock) ListCalls() []struct{ Input lesson.ListInput } {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

// ---------------------------------------------------------------------------
// progressService
// ---------------------------------------------------------------------------

type progressServiceMock struct {
	GetFunc       func(ctx context.Context, lessonID uuid.UUID) (*domain.Progress, error)
	ListFunc      func(ctx context.Context) ([]*domain.Progress, error)
	AnalyticsFunc func(ctx context.Context) (*domain.ProgressAnalytics, error)
	UpdateFunc    func(ctx context.Context, lessonID uuid.UUID, input progress.UpdateInput) (*domain.Progress, error)
}

func (mock *progressServiceMock) Get(ctx context.Context, lessonID uuid.UUID) (*domain.Progress, error) {
	if mock.GetFunc == nil {
		panic("progressServiceMock.GetFunc: method is nil but progressService.Get was just called")
	}
	return mock.GetFunc(ctx, lessonID)
}

func (mock *progressServiceMock) List(ctx context.Context) ([]*domain.Progress, error) {
	if mock.ListFunc == nil {
		panic("progressServiceMock.ListFunc: method is nil but progressService.List was just called")
	}
	return mock.ListFunc(ctx)
}

func (mock *progressServiceMock) Analytics(ctx context.Context) (*domain.ProgressAnalytics, error) {
	if mock.AnalyticsFunc == nil {
		panic("progressServiceMock.AnalyticsFunc: method is nil but progressService.Analytics was just called")
	}
	return mock.AnalyticsFunc(ctx)
}

func (mock *progressServiceMock) Update(ctx context.Context, lessonID uuid.UUID, input progress.UpdateInput) (*domain.Progress, error) {
	if mock.UpdateFunc == nil {
		panic("progressServiceMock.UpdateFunc: method is nil but progressService.Update was just called")
	}
	return mock.UpdateFunc(ctx, lessonID, input)
}

// ---------------------------------------------------------------------------
// tutorService
// ---------------------------------------------------------------------------

type tutorServiceMock struct {
	ExplainFunc            func(ctx context.Context, input tutor.ExplainInput) (domain.ProviderResponse[domain.Explanation], error)
	AnalyzeImageFunc       func(ctx context.Context, input tutor.AnalyzeImageInput) (domain.ProviderResponse[domain.ImageAnalysis], error)
	StartConversationFunc  func(ctx context.Context, input tutor.StartConversationInput) (*domain.Conversation, error)
	GetConversationFunc    func(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	ListConversationsFunc  func(ctx context.Context, input tutor.ListConversationsInput) ([]*domain.Conversation, int, error)
	SendMessageFunc        func(ctx context.Context, conversationID uuid.UUID, input tutor.SendMessageInput) (*tutor.SendMessageResult, error)
	DeleteConversationFunc func(ctx context.Context, id uuid.UUID) error
}

func (mock *tutorServiceMock) Explain(ctx context.Context, input tutor.ExplainInput) (domain.ProviderResponse[domain.Explanation], error) {
	if mock.ExplainFunc == nil {
		panic("tutorServiceMock.ExplainFunc: method is nil but tutorService.Explain was just called")
	}
	return mock.ExplainFunc(ctx, input)
}

func (mock *tutorServiceMock) AnalyzeImage(ctx context.Context, input tutor.AnalyzeImageInput) (domain.ProviderResponse[domain.ImageAnalysis], error) {
	if mock.AnalyzeImageFunc == nil {
		panic("tutorServiceMock.AnalyzeImageFunc: method is nil but tutorService.AnalyzeImage was just called")
	}
	return mock.AnalyzeImageFunc(ctx, input)
}

func (mock *tutorServiceMock) StartConversation(ctx context.Context, input tutor.StartConversationInput) (*domain.Conversation, error) {
	if mock.StartConversationFunc == nil {
		panic("tutorServiceMock.StartConversationFunc: method is nil but tutorService.StartConversation was just called")
	}
	return mock.StartConversationFunc(ctx, input)
}

func (mock *tutorServiceMock) GetConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	if mock.GetConversationFunc == nil {
		panic("tutorServiceMock.GetConversationFunc: method is nil but tutorService.GetConversation was just called")
	}
	return mock.GetConversationFunc(ctx, id)
}

func (mock *tutorServiceMock) ListConversations(ctx context.Context, input tutor.ListConversationsInput) ([]*domain.Conversation, int, error) {
	if mock.ListConversationsFunc == nil {
		panic("tutorServiceMock.ListConversationsFunc: method is nil but tutorService.ListConversations was just called")
	}
	return mock.ListConversationsFunc(ctx, input)
}

func (mock *tutorServiceMock) SendMessage(ctx context.Context, conversationID uuid.UUID, input tutor.SendMessageInput) (*tutor.SendMessageResult, error) {
	if mock.SendMessageFunc == nil {
		panic("tutorServiceMock.SendMessageFunc: method is nil but tutorService.SendMessage was just called")
	}
	return mock.SendMessageFunc(ctx, conversationID, input)
}

func (mock *tutorServiceMock) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteConversationFunc == nil {
		panic("tutorServiceMock.DeleteConversationFunc: method is nil but tutorService.DeleteConversation was just called")
	}
	return mock.DeleteConversationFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// libraryService
// ---------------------------------------------------------------------------

type libraryServiceMock struct {
	CreateFunc func(ctx context.Context, input library.CreateInput) (*domain.Book, error)
	GetFunc    func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	ListFunc   func(ctx context.Context, input library.ListInput) (*library.ListResult, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, input library.UpdateInput) (*domain.Book, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (mock *libraryServiceMock) Create(ctx context.Context, input library.CreateInput) (*domain.Book, error) {
	if mock.CreateFunc == nil {
		panic("libraryServiceMock.CreateFunc: method is nil but libraryService.Create was just called")
	}
	return mock.CreateFunc(ctx, input)
}

func (mock *libraryServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if mock.GetFunc == nil {
		panic("libraryServiceMock.GetFunc: method is nil but libraryService.Get was just called")
	}
	return mock.GetFunc(ctx, id)
}

func (mock *libraryServiceMock) List(ctx context.Context, input library.ListInput) (*library.ListResult, error) {
	if mock.ListFunc == nil {
		panic("libraryServiceMock.ListFunc: method is nil but libraryService.List was just called")
	}
	return mock.ListFunc(ctx, input)
}

func (mock *libraryServiceMock) Update(ctx context.Context, id uuid.UUID, input library.UpdateInput) (*domain.Book, error) {
	if mock.UpdateFunc == nil {
		panic("libraryServiceMock.UpdateFunc: method is nil but libraryService.Update was just called")
	}
	return mock.UpdateFunc(ctx, id, input)
}

func (mock *libraryServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("libraryServiceMock.DeleteFunc: method is nil but libraryService.Delete was just called")
	}
	return mock.DeleteFunc(ctx, id)
}
