package lesson

import (
	"context"
	"sync"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
)

var _ llm.Provider = &providerMock{}

type providerMock struct {
	NameFunc                func() string
	GenerateLessonFunc      func(ctx context.Context, in llm.LessonInput) (domain.ProviderResponse[domain.LessonContent], error)
	ValidateContentFunc     func(ctx context.Context, in llm.ReviewInput) (domain.ProviderResponse[domain.ContentValidationResult], error)
	GenerateExplanationFunc func(ctx context.Context, in llm.ExplanationInput) (domain.ProviderResponse[domain.Explanation], error)
	AnalyzeImageFunc        func(ctx context.Context, in llm.ImageInput) (domain.ProviderResponse[domain.ImageAnalysis], error)

	calls struct {
		GenerateLesson []struct {
			In llm.LessonInput
		}
		ValidateContent []struct {
			In llm.ReviewInput
		}
		GenerateExplanation []struct {
			In llm.ExplanationInput
		}
		AnalyzeImage []struct {
			In llm.ImageInput
		}
	}
	lockGenerateLesson      sync.RWMutex
	lockValidateContent     sync.RWMutex
	lockGenerateExplanation sync.RWMutex
	lockAnalyzeImage        sync.RWMutex
}

func (mock *providerMock) Name() string {
	if mock.NameFunc == nil {
		panic("providerMock.NameFunc: method is nil but Provider.Name was just called")
	}
	return mock.NameFunc()
}

func (mock *providerMock) GenerateLesson(ctx context.Context, in llm.LessonInput) (domain.ProviderResponse[domain.LessonContent], error) {
	if mock.GenerateLessonFunc == nil {
		panic("providerMock.GenerateLessonFunc: method is nil but Provider.GenerateLesson was just called")
	}
	mock.lockGenerateLesson.Lock()
	mock.calls.GenerateLesson = append(mock.calls.GenerateLesson, struct{ In llm.LessonInput }{In: in})
	mock.lockGenerateLesson.Unlock()
	return mock.GenerateLessonFunc(ctx, in)
}

func (mock *providerMock) GenerateLessonCalls() []struct{ In llm.LessonInput } {
	mock.lockGenerateLesson.RLock()
	calls := mock.calls.GenerateLesson
	mock.lockGenerateLesson.RUnlock()
	return calls
}

func (mock *providerMock) ValidateContent(ctx context.Context, in llm.ReviewInput) (domain.ProviderResponse[domain.ContentValidationResult], error) {
	if mock.ValidateContentFunc == nil {
		panic("providerMock.ValidateContentFunc: method is nil but Provider.ValidateContent was just called")
	}
	mock.lockValidateContent.Lock()
	mock.calls.ValidateContent = append(mock.calls.ValidateContent, struct{ In llm.ReviewInput }{In: in})
	mock.lockValidateContent.Unlock()
	return mock.ValidateContentFunc(ctx, in)
}

func (mock *providerMock) ValidateContentCalls() []struct{ In llm.ReviewInput } {
	mock.lockValidateContent.RLock()
	calls := mock.calls.ValidateContent
	mock.lockValidateContent.RUnlock()
	return calls
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
