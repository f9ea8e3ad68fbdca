package adapter

import (
	"context"
	"sync"

	"github.com/heartmarshall/lessonforge-backend/internal/llm"
)

var _ llm.ChatModel = &chatModelMock{}

type chatModelMock struct {
	NameFunc           func() string
	SupportsImagesFunc func() bool
	CompleteFunc       func(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error)

	calls struct {
		Complete []struct {
			Req llm.CompletionRequest
		}
	}
	lockComplete sync.RWMutex
}

func (mock *chatModelMock) Name() string {
	if mock.NameFunc == nil {
		return "mock"
	}
	return mock.NameFunc()
}

func (mock *chatModelMock) SupportsImages() bool {
	if mock.SupportsImagesFunc == nil {
		return false
	}
	return mock.SupportsImagesFunc()
}

func (mock *chatModelMock) Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error) {
	if mock.CompleteFunc == nil {
		panic("chatModelMock.CompleteFunc: method is nil but ChatModel.Complete was just called")
	}
	callInfo := struct{ Req llm.CompletionRequest }{Req: req}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, callInfo)
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, req)
}

func (mock *chatModelMock) CompleteCalls() []struct{ Req llm.CompletionRequest } {
	mock.lockComplete.RLock()
	calls := mock.calls.Complete
	mock.lockComplete.RUnlock()
	return calls
}
