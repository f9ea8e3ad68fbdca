package progress

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

var (
	_ progressRepo = &progressRepoMock{}
	_ lessonRepo   = &lessonRepoMock{}
	_ txManager    = &txManagerMock{}
)

type progressRepoMock struct {
	GetFunc        func(ctx context.Context, userID, lessonID uuid.UUID) (*domain.Progress, error)
	UpsertFunc     func(ctx context.Context, p *domain.Progress) (*domain.Progress, error)
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error)
	AnalyticsFunc  func(ctx context.Context, userID uuid.UUID) (*domain.ProgressAnalytics, error)

	calls struct {
		Upsert []struct {
			P *domain.Progress
		}
	}
	lockUpsert sync.RWMutex
}

func (mock *progressRepoMock) Get(ctx context.Context, userID, lessonID uuid.UUID) (*domain.Progress, error) {
	if mock.GetFunc == nil {
		panic("progressRepoMock.GetFunc: method is nil but progressRepo.Get was just called")
	}
	return mock.GetFunc(ctx, userID, lessonID)
}

func (mock *progressRepoMock) Upsert(ctx context.Context, p *domain.Progress) (*domain.Progress, error) {
	if mock.UpsertFunc == nil {
		panic("progressRepoMock.UpsertFunc: method is nil but progressRepo.Upsert was just called")
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, struct{ P *domain.Progress }{P: p})
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, p)
}

func (mock *progressRepoMock) UpsertCalls() []struct{ P *domain.Progress } {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *progressRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error) {
	if mock.ListByUserFunc == nil {
		panic("progressRepoMock.ListByUserFunc: method is nil but progressRepo.ListByUser was just called")
	}
	return mock.ListByUserFunc(ctx, userID)
}

func (mock *progressRepoMock) Analytics(ctx context.Context, userID uuid.UUID) (*domain.ProgressAnalytics, error) {
	if mock.AnalyticsFunc == nil {
		panic("progressRepoMock.AnalyticsFunc: method is nil but progressRepo.Analytics was just called")
	}
	return mock.AnalyticsFunc(ctx, userID)
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

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
