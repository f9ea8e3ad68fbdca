package library

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

var _ bookRepo = &bookRepoMock{}

type bookRepoMock struct {
	CreateFunc func(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetFunc    func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Book, error)
	ListFunc   func(ctx context.Context, ownerID uuid.UUID, filter domain.BookFilter, page domain.Page) ([]*domain.Book, int, error)
	UpdateFunc func(ctx context.Context, book *domain.Book) (*domain.Book, error)
	DeleteFunc func(ctx context.Context, ownerID, id uuid.UUID) error

	calls struct {
		Create []struct {
			Book *domain.Book
		}
		List []struct {
			OwnerID uuid.UUID
			Filter  domain.BookFilter
			Page    domain.Page
		}
		Update []struct {
			Book *domain.Book
		}
	}
	lockCreate sync.RWMutex
	lockList   sync.RWMutex
	lockUpdate sync.RWMutex
}

func (mock *bookRepoMock) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if mock.CreateFunc == nil {
		panic("bookRepoMock.CreateFunc: method is nil but bookRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Book *domain.Book }{Book: book})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, book)
}

func (mock *bookRepoMock) CreateCalls() []struct{ Book *domain.Book } {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *bookRepoMock) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Book, error) {
	if mock.GetFunc == nil {
		panic("bookRepoMock.GetFunc: method is nil but bookRepo.Get was just called")
	}
	return mock.GetFunc(ctx, ownerID, id)
}

func (mock *bookRepoMock) List(ctx context.Context, ownerID uuid.UUID, filter domain.BookFilter, page domain.Page) ([]*domain.Book, int, error) {
	if mock.ListFunc == nil {
		panic("bookRepoMock.ListFunc: method is nil but bookRepo.List was just called")
	}
	callInfo := struct {
		OwnerID uuid.UUID
		Filter  domain.BookFilter
		Page    domain.Page
	}{OwnerID: ownerID, Filter: filter, Page: page}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, ownerID, filter, page)
}

func (mock *bookRepoMock) ListCalls() []struct {
	OwnerID uuid.UUID
	Filter  domain.BookFilter
	Page    domain.Page
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *bookRepoMock) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if mock.UpdateFunc == nil {
		panic("bookRepoMock.UpdateFunc: method is nil but bookRepo.Update was just called")
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, struct{ Book *domain.Book }{Book: book})
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, book)
}

func (mock *bookRepoMock) UpdateCalls() []struct{ Book *domain.Book } {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *bookRepoMock) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("bookRepoMock.DeleteFunc: method is nil but bookRepo.Delete was just called")
	}
	return mock.DeleteFunc(ctx, ownerID, id)
}
