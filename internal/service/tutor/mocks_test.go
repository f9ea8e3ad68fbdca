package tutor

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
)

var (
	_ conversationRepo = &conversationRepoMock{}
	_ lessonRepo       = &lessonRepoMock{}
	_ llm.Provider     = &providerMock{}
)

type conversationRepoMock struct {
	CreateFunc         func(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	GetFunc            func(ctx context.Context, userID, id uuid.UUID) (*domain.Conversation, error)
	ListFunc           func(ctx context.Context, userID uuid.UUID, page domain.Page) ([]*domain.Conversation, int, error)
	AppendMessagesFunc func(ctx context.Context, userID, id uuid.UUID, msgs ...domain.ChatMessage) error
	DeleteFunc         func(ctx context.Context, userID, id uuid.UUID) error

	calls struct {
		AppendMessages []struct {
			UserID uuid.UUID
			ID     uuid.UUID
			Msgs   []domain.ChatMessage
		}
	}
	lockAppendMessages sync.RWMutex
}

func (mock *conversationRepoMock) Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	if mock.CreateFunc == nil {
		panic("conversationRepoMock.CreateFunc: method is nil but conversationRepo.Create was just called")
	}
	return mock.CreateFunc(ctx, conv)
}

func (mock *conversationRepoMock) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Conversation, error) {
	if mock.GetFunc == nil {
		panic("conversationRepoMock.GetFunc: method is nil but conversationRepo.Get was just called")
	}
	return mock.GetFunc(ctx, userID, id)
}

func (mock *conversationRepoMock) List(ctx context.Context, userID uuid.UUID, page domain.Page) ([]*domain.Conversation, int, error) {
	if mock.ListFunc == nil {
		panic("conversationRepoMock.ListFunc: method is nil but conversationRepo.List was just called")
	}
	return mock.ListFunc(ctx, userID, page)
}

func (mock *conversationRepoMock) AppendMessages(ctx context.Context, userID, id uuid.UUID, msgs ...domain.ChatMessage) error {
	if mock.AppendMessagesFunc == nil {
		panic("conversationRepoMock.AppendMessagesFunc: method is nil but conversationRepo.AppendMessages was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
		ID     uuid.UUID
		Msgs   []domain.ChatMessage
	}{UserID: userID, ID: id, Msgs: msgs}
	mock.lockAppendMessages.Lock()
	mock.calls.AppendMessages = append(mock.calls.AppendMessages, callInfo)
	mock.lockAppendMessages.Unlock()
	return mock.AppendMessagesFunc(ctx, userID, id, msgs...)
}

func (mock *conversationRepoMock) AppendMessagesCalls() []struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Msgs   []domain.ChatMessage
} {
	mock.lockAppendMessages.RLock()
	calls := mock.calls.AppendMessages
	mock.lockAppendMessages.RUnlock()
	return calls
}

func (mock *conversationRepoMock) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("conversationRepoMock.DeleteFunc: method is nil but conversationRepo.Delete was just called")
	}
	return mock.DeleteFunc(ctx, userID, id)
}

type lessonRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
}

func (mock *lessonRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	if mock.GetByIDFunc == nil {
		panic("lessonRepoMock.GetByIDFunc: method is nil but lessonRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

type providerMock struct {
	NameFunc                func() string
	GenerateExplanationFunc func(ctx context.Context, in llm.ExplanationInput) (domain.ProviderResponse[domain.Explanation], error)
	AnalyzeImageFunc        func(ctx context.Context, in llm.ImageInput) (domain.ProviderResponse[domain.ImageAnalysis], error)

	calls struct {
		GenerateExplanation []struct {
			In llm.ExplanationInput
		}
		AnalyzeImage []struct {
			In llm.ImageInput
		}
	}
	lockGenerateExplanation sync.RWMutex
	lockAnalyzeImage        sync.RWMutex
}

func (mock *providerMock) Name() string {
	if mock.NameFunc == nil {
		panic("providerMock.NameFunc: method is nil but Provider.Name was just called")
	}
	return mock.NameFunc()
}

func (mock *providerMock) GenerateLesson(context.Context, llm.LessonInput) (domain.ProviderResponse[domain.LessonContent], error) {
	panic("providerMock.GenerateLesson: not expected in tutor tests")
}

func (mock *providerMock) ValidateContent(context.Context, llm.ReviewInput) (domain.ProviderResponse[domain.ContentValidationResult], error) {
	panic("providerMock.ValidateContent: not expected in tutor tests")
}

func (mock *providerMock) GenerateExplanation(ctx context.Context, in llm.ExplanationInput) (domain.ProviderResponse[domain.Explanation], error) {
	if mock.GenerateExplanationFunc == nil {
		panic("providerMock.GenerateExplanationFunc: method is nil but Provider.GenerateExplanation was just called")
	}
	mock.lockGenerateExplanation.Lock()
	mock.calls.GenerateExplanation = append(mock.calls.GenerateExplanation, struct{ In llm.ExplanationInput }{In: in})
	mock.lockGenerateExplanation.Unlock()
	return mock.GenerateExplanationFunc(ctx, in)
}

func (mock *providerMock) GenerateExplanationCalls() []struct{ In llm.ExplanationInput } {
	mock.lockGenerateExplanation.RLock()
	calls := mock.calls.GenerateExplanation
	mock.lockGenerateExplanation.RUnlock()
	return calls
}

func (mock *providerMock) AnalyzeImage(ctx context.Context, in llm.ImageInput) (domain.ProviderResponse[domain.ImageAnalysis], error) {
	if mock.AnalyzeImageFunc == nil {
		panic("providerMock.AnalyzeImageFunc: method is nil but Provider.AnalyzeImage was just called")
	}
	mock.lockAnalyzeImage.Lock()
	mock.calls.AnalyzeImage = append(mock.calls.AnalyzeImage, struct{ In llm.ImageInput }{In: in})
	mock.lockAnalyzeImage.Unlock()
	return mock.AnalyzeImageFunc(ctx, in)
}

func (mock *providerMock) AnalyzeImageCalls() []struct{ In llm.ImageInput } {
	mock.lockAnalyzeImage.RLock()
	calls := mock.calls.AnalyzeImage
	mock.lockAnalyzeImage.RUnlock()
	return calls
}
