// Package book stores the per-user book library in MongoDB.
package book

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heartmarshall/lessonforge-backend/internal/adapter/mongodb"
	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

// Repo provides book persistence backed by MongoDB.
type Repo struct {
	coll *mongo.Collection
}

// New creates a new book repository on db.
func New(db *mongo.Database) *Repo {
	return &Repo{coll: db.Collection(mongodb.BooksCollection)}
}

type document struct {
	ID          string    `bson:"_id"`
	OwnerID     string    `bson:"owner_id"`
	Title       string    `bson:"title"`
	Author      string    `bson:"author"`
	Subject     *string   `bson:"subject,omitempty"`
	GradeLevel  *int      `bson:"grade_level,omitempty"`
	Description *string   `bson:"description,omitempty"`
	Tags        []string  `bson:"tags"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// Create inserts a new book.
func (r *Repo) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	if _, err := r.coll.InsertOne(ctx, fromDomain(b)); err != nil {
		return nil, mongodb.MapError(err, "book", b.ID)
	}
	return b, nil
}

// Get returns one of the owner's books.
func (r *Repo) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Book, error) {
	var doc document
	if err := r.coll.FindOne(ctx, ownedBy(ownerID, id)).Decode(&doc); err != nil {
		return nil, mongodb.MapError(err, "book", id)
	}
	return toDomain(doc)
}

// List returns a page of the owner's books matching filter, newest first.
// Subject matches case-insensitively; Search matches title, author or
// description as a literal substring.
func (r *Repo) List(ctx context.Context, ownerID uuid.UUID, f domain.BookFilter, page domain.Page) ([]*domain.Book, int, error) {
	filter := listFilter(ownerID, f)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}
	if total == 0 {
		return []*domain.Book{}, 0, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(page.Offset)).
		SetLimit(int64(page.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find books: %w", err)
	}
	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode books: %w", err)
	}

	out := make([]*domain.Book, 0, len(docs))
	for _, d := range docs {
		b, err := toDomain(d)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, int(total), nil
}

// Update replaces the stored book with b.
func (r *Repo) Update(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	res, err := r.coll.ReplaceOne(ctx, ownedBy(b.OwnerID, b.ID), fromDomain(b))
	if err != nil {
		return nil, mongodb.MapError(err, "book", b.ID)
	}
	if res.MatchedCount == 0 {
		return nil, mongodb.MapError(mongo.ErrNoDocuments, "book", b.ID)
	}
	return b, nil
}

// Delete removes one of the owner's books.
func (r *Repo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, ownedBy(ownerID, id))
	if err != nil {
		return mongodb.MapError(err, "book", id)
	}
	if res.DeletedCount == 0 {
		return mongodb.MapError(mongo.ErrNoDocuments, "book", id)
	}
	return nil
}

func ownedBy(ownerID, id uuid.UUID) bson.M {
	return bson.M{"_id": id.String(), "owner_id": ownerID.String()}
}

func listFilter(ownerID uuid.UUID, f domain.BookFilter) bson.M {
	filter := bson.M{"owner_id": ownerID.String()}
	if f.Subject != nil {
		filter["subject"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(*f.Subject) + "$", Options: "i"}
	}
	if f.GradeLevel != nil {
		filter["grade_level"] = *f.GradeLevel
	}
	if f.Search != nil && *f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(*f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"author": re},
			bson.M{"description": re},
		}
	}
	return filter
}

func fromDomain(b *domain.Book) document {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return document{
		ID:          b.ID.String(),
		OwnerID:     b.OwnerID.String(),
		Title:       b.Title,
		Author:      b.Author,
		Subject:     b.Subject,
		GradeLevel:  b.GradeLevel,
		Description: b.Description,
		Tags:        tags,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toDomain(d document) (*domain.Book, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("book id %q: %w", d.ID, err)
	}
	ownerID, err := uuid.Parse(d.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("book %s owner id: %w", d.ID, err)
	}
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Book{
		ID:          id,
		OwnerID:     ownerID,
		Title:       d.Title,
		Author:      d.Author,
		Subject:     d.Subject,
		GradeLevel:  d.GradeLevel,
		Description: d.Description,
		Tags:        tags,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}, nil
}
