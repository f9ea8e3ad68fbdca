// Package lesson implements the lesson repository using PostgreSQL.
// Content and metadata are stored as JSONB documents next to the columns
// listings filter on.
package lesson

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/lessonforge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

const table = "lessons"

var columns = []string{
	"id", "author_id", "subject", "topic", "target_grade", "lesson_length",
	"difficulty", "content", "metadata", "created_at", "updated_at",
}

// title duplicates content.title so search can use a trigram index.
var insertColumns = append(columns[:len(columns):len(columns)], "title")

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Repo provides lesson persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new lesson repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID           uuid.UUID `db:"id"`
	AuthorID     uuid.UUID `db:"author_id"`
	Subject      string    `db:"subject"`
	Topic        string    `db:"topic"`
	TargetGrade  int       `db:"target_grade"`
	LessonLength string    `db:"lesson_length"`
	Difficulty   *string   `db:"difficulty"`
	Content      []byte    `db:"content"`
	Metadata     []byte    `db:"metadata"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Create inserts a lesson and returns it as stored.
func (r *Repo) Create(ctx context.Context, l *domain.Lesson) (*domain.Lesson, error) {
	content, err := json.Marshal(l.Content)
	if err != nil {
		return nil, fmt.Errorf("marshal lesson content: %w", err)
	}
	metadata, err := json.Marshal(l.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal lesson metadata: %w", err)
	}

	var difficulty *string
	if l.Difficulty != "" {
		d := string(l.Difficulty)
		difficulty = &d
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(insertColumns...).
		Values(
			l.ID, l.AuthorID, l.Subject, l.Topic, l.TargetGrade, string(l.LessonLength),
			difficulty, content, metadata, l.CreatedAt, l.UpdatedAt, l.Content.Title,
		).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert lesson: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "lesson", l.ID)
	}
	return toDomain(out)
}

// GetByID returns a lesson by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select lesson: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "lesson", id)
	}
	return toDomain(out)
}

// List returns a page of lessons matching filter, newest first, together
// with the total number of matches.
func (r *Repo) List(ctx context.Context, filter domain.LessonFilter, page domain.Page) ([]*domain.Lesson, int, error) {
	where := conditions(filter)
	q := postgres.QuerierFromCtx(ctx, r.db)

	countSQL, countArgs, err := postgres.Builder().Select("count(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count lessons: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count lessons: %w", err)
	}
	if total == 0 {
		return []*domain.Lesson{}, 0, nil
	}

	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list lessons: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list lessons: %w", err)
	}

	lessons := make([]*domain.Lesson, 0, len(rows))
	for _, rw := range rows {
		l, err := toDomain(rw)
		if err != nil {
			return nil, 0, err
		}
		lessons = append(lessons, l)
	}
	return lessons, total, nil
}

func conditions(f domain.LessonFilter) sq.And {
	where := sq.And{}
	if f.AuthorID != nil {
		where = append(where, sq.Eq{"author_id": *f.AuthorID})
	}
	if f.Subject != nil {
		where = append(where, sq.ILike{"subject": likeEscaper.Replace(*f.Subject)})
	}
	if f.TargetGrade != nil {
		where = append(where, sq.Eq{"target_grade": *f.TargetGrade})
	}
	if f.Difficulty != nil {
		where = append(where, sq.Eq{"difficulty": string(*f.Difficulty)})
	}
	if f.Search != nil && *f.Search != "" {
		pattern := "%" + likeEscaper.Replace(*f.Search) + "%"
		where = append(where, sq.Or{sq.ILike{"title": pattern}, sq.ILike{"topic": pattern}})
	}
	return where
}

func toDomain(r row) (*domain.Lesson, error) {
	l := &domain.Lesson{
		ID:           r.ID,
		AuthorID:     r.AuthorID,
		Subject:      r.Subject,
		Topic:        r.Topic,
		TargetGrade:  r.TargetGrade,
		LessonLength: domain.LessonLength(r.LessonLength),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Difficulty != nil {
		l.Difficulty = domain.Difficulty(*r.Difficulty)
	}
	if err := json.Unmarshal(r.Content, &l.Content); err != nil {
		return nil, fmt.Errorf("decode lesson %s content: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.Metadata, &l.Metadata); err != nil {
		return nil, fmt.Errorf("decode lesson %s metadata: %w", r.ID, err)
	}
	return l, nil
}
