// Package progress implements the learner progress repository using
// PostgreSQL, including the per-user analytics aggregates.
package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/lessonforge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

const table = "lesson_progress"

var columns = []string{
	"user_id", "lesson_id", "status", "score", "time_spent_seconds",
	"completed_sections", "last_accessed_at", "completed_at",
}

// Repo provides progress persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new progress repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	UserID            uuid.UUID  `db:"user_id"`
	LessonID          uuid.UUID  `db:"lesson_id"`
	Status            string     `db:"status"`
	Score             *int       `db:"score"`
	TimeSpentSeconds  int        `db:"time_spent_seconds"`
	CompletedSections []int      `db:"completed_sections"`
	LastAccessedAt    time.Time  `db:"last_accessed_at"`
	CompletedAt       *time.Time `db:"completed_at"`
}

// ---------------------------------------------------------------------------
// Raw SQL for aggregates
// ---------------------------------------------------------------------------

const totalsSQL = `
SELECT
    count(*)                                          AS total_lessons,
    count(*) FILTER (WHERE status = 'completed')      AS completed,
    count(*) FILTER (WHERE status = 'in_progress')    AS in_progress,
    avg(score)::float8                                AS average_score,
    coalesce(sum(time_spent_seconds), 0)::bigint      AS total_time_seconds
FROM lesson_progress
WHERE user_id = $1`

const bySubjectSQL = `
SELECT
    l.subject,
    count(*)                                          AS lessons,
    count(*) FILTER (WHERE p.status = 'completed')    AS completed,
    avg(p.score)::float8                              AS average_score
FROM lesson_progress p
JOIN lessons l ON l.id = p.lesson_id
WHERE p.user_id = $1
GROUP BY l.subject
ORDER BY l.subject`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Get returns the progress of userID on lessonID. Inside a transaction the
// row is locked until commit.
func (r *Repo) Get(ctx context.Context, userID, lessonID uuid.UUID) (*domain.Progress, error) {
	b := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID, "lesson_id": lessonID})
	if postgres.InTx(ctx) {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select progress: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "progress", key(userID, lessonID))
	}
	return toDomain(out), nil
}

// Upsert writes the full progress row and returns it as stored.
func (r *Repo) Upsert(ctx context.Context, p *domain.Progress) (*domain.Progress, error) {
	sections := p.CompletedSections
	if sections == nil {
		sections = []int{}
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(p.UserID, p.LessonID, string(p.Status), p.Score, p.TimeSpentSeconds,
			sections, p.LastAccessedAt, p.CompletedAt).
		Suffix(`ON CONFLICT (user_id, lesson_id) DO UPDATE SET
    status = EXCLUDED.status,
    score = EXCLUDED.score,
    time_spent_seconds = EXCLUDED.time_spent_seconds,
    completed_sections = EXCLUDED.completed_sections,
    last_accessed_at = EXCLUDED.last_accessed_at,
    completed_at = EXCLUDED.completed_at
RETURNING ` + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert progress: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "progress", key(p.UserID, p.LessonID))
	}
	return toDomain(out), nil
}

// ListByUser returns every progress row of userID, most recently accessed first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("last_accessed_at DESC", "lesson_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list progress: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list progress for user %s: %w", userID, err)
	}

	items := make([]*domain.Progress, 0, len(rows))
	for _, rw := range rows {
		items = append(items, toDomain(rw))
	}
	return items, nil
}

type totalsRow struct {
	TotalLessons     int      `db:"total_lessons"`
	Completed        int      `db:"completed"`
	InProgress       int      `db:"in_progress"`
	AverageScore     *float64 `db:"average_score"`
	TotalTimeSeconds int      `db:"total_time_seconds"`
}

type subjectRow struct {
	Subject      string   `db:"subject"`
	Lessons      int      `db:"lessons"`
	Completed    int      `db:"completed"`
	AverageScore *float64 `db:"average_score"`
}

// Analytics aggregates the progress of userID overall and per subject.
func (r *Repo) Analytics(ctx context.Context, userID uuid.UUID) (*domain.ProgressAnalytics, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var totals totalsRow
	if err := pgxscan.Get(ctx, q, &totals, totalsSQL, userID); err != nil {
		return nil, fmt.Errorf("progress totals for user %s: %w", userID, err)
	}

	var subjects []subjectRow
	if err := pgxscan.Select(ctx, q, &subjects, bySubjectSQL, userID); err != nil {
		return nil, fmt.Errorf("progress by subject for user %s: %w", userID, err)
	}

	a := &domain.ProgressAnalytics{
		TotalLessons:     totals.TotalLessons,
		Completed:        totals.Completed,
		InProgress:       totals.InProgress,
		AverageScore:     totals.AverageScore,
		TotalTimeSeconds: totals.TotalTimeSeconds,
		BySubject:        make([]domain.SubjectStats, 0, len(subjects)),
	}
	for _, s := range subjects {
		a.BySubject = append(a.BySubject, domain.SubjectStats(s))
	}
	return a, nil
}

func toDomain(r row) *domain.Progress {
	sections := r.CompletedSections
	if sections == nil {
		sections = []int{}
	}
	return &domain.Progress{
		UserID:            r.UserID,
		LessonID:          r.LessonID,
		Status:            domain.ProgressStatus(r.Status),
		Score:             r.Score,
		TimeSpentSeconds:  r.TimeSpentSeconds,
		CompletedSections: sections,
		LastAccessedAt:    r.LastAccessedAt,
		CompletedAt:       r.CompletedAt,
	}
}

func key(userID, lessonID uuid.UUID) string {
	return userID.String() + "/" + lessonID.String()
}
