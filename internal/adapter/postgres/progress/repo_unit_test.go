package progress

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/lessonforge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestGet_LocksRowInsideTransaction(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	userID, lessonID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM lesson_progress WHERE lesson_id = \$1 AND user_id = \$2 FOR UPDATE`).
		WithArgs(lessonID.String(), userID.String()).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(userID, lessonID, "in_progress", nil, 120, []int{1, 2}, now, nil))
	mock.ExpectCommit()

	var got *domain.Progress
	err := postgres.NewTxManager(mock).RunInTx(context.Background(), func(ctx context.Context) error {
		var err error
		got, err = New(mock).Get(ctx, userID, lessonID)
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ProgressInProgress, got.Status)
	assert.Equal(t, []int{1, 2}, got.CompletedSections)
	assert.Nil(t, got.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	userID, lessonID := uuid.New(), uuid.New()
	mock.ExpectQuery(`FROM lesson_progress WHERE lesson_id = \$1 AND user_id = \$2$`).
		WithArgs(lessonID.String(), userID.String()).
		WillReturnRows(pgxmock.NewRows(columns))

	_, err := New(mock).Get(context.Background(), userID, lessonID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalytics_EmptySubjects(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	userID := uuid.New()
	mock.ExpectQuery(`FROM lesson_progress\s+WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"total_lessons", "completed", "in_progress", "average_score", "total_time_seconds"}).
			AddRow(0, 0, 0, nil, 0))
	mock.ExpectQuery(`GROUP BY l.subject`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"subject", "lessons", "completed", "average_score"}))

	got, err := New(mock).Analytics(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalLessons)
	assert.Nil(t, got.AverageScore)
	assert.NotNil(t, got.BySubject)
	assert.NoError(t, mock.ExpectationsWereMet())
}
