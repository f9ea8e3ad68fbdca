package lesson

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

var _ lessonRepo = &lessonRepoMock{}

type lessonRepoMock struct {
	CreateFunc  func(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	ListFunc    func(ctx context.Context, filter domain.LessonFilter, page domain.Page) ([]*domain.Lesson, int, error)

	calls struct {
		Create []struct {
			Ctx    context.Context
			Lesson *domain.Lesson
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Filter domain.LessonFilter
			Page   domain.Page
		}
	}
	lockCreate  sync.RWMutex
	lockGetByID sync.RWMutex
	lockList    sync.RWMutex
}

func (mock *lessonRepoMock) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	if mock.CreateFunc == nil {
		panic("lessonRepoMock.CreateFunc: method is nil but lessonRepo.Create was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Lesson *domain.Lesson
	}{Ctx: ctx, Lesson: lesson}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, lesson)
}

func (mock *lessonRepoMock) CreateCalls() []struct {
	Ctx    context.Context
	Lesson *domain.Lesson
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *lessonRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	if mock.GetByIDFunc == nil {
		panic("lessonRepoMock.GetByIDFunc: method is nil but lessonRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *lessonRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *lessonRepoMock) List(ctx context.Context, filter domain.LessonFilter, page domain.Page) ([]*domain.Lesson, int, error) {
	if mock.ListFunc == nil {
		panic("lessonRepoMock.ListFunc: method is nil but lessonRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.LessonFilter
		Page   domain.Page
	}{Ctx: ctx, Filter: filter, Page: page}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter, page)
}

func (mock *lessonRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.LessonFilter
	Page   domain.Page
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
