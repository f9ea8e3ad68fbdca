// Package conversation stores tutor conversations in MongoDB. Messages are
// embedded in the conversation document and appended with $push.
package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heartmarshall/lessonforge-backend/internal/adapter/mongodb"
	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

// Repo provides conversation persistence backed by MongoDB.
type Repo struct {
	coll *mongo.Collection
}

// New creates a new conversation repository on db.
func New(db *mongo.Database) *Repo {
	return &Repo{coll: db.Collection(mongodb.ConversationsCollection)}
}

type messageDoc struct {
	Role      string    `bson:"role"`
	Content   string    `bson:"content"`
	Model     string    `bson:"model,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

type document struct {
	ID        string       `bson:"_id"`
	UserID    string       `bson:"user_id"`
	Title     string       `bson:"title"`
	LessonID  *string      `bson:"lesson_id,omitempty"`
	Messages  []messageDoc `bson:"messages"`
	CreatedAt time.Time    `bson:"created_at"`
	UpdatedAt time.Time    `bson:"updated_at"`
}

// Create inserts a new conversation.
func (r *Repo) Create(ctx context.Context, c *domain.Conversation) (*domain.Conversation, error) {
	if _, err := r.coll.InsertOne(ctx, fromDomain(c)); err != nil {
		return nil, mongodb.MapError(err, "conversation", c.ID)
	}
	return c, nil
}

// Get returns a conversation with all its messages. Conversations of other
// users are reported as not found.
func (r *Repo) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Conversation, error) {
	var doc document
	err := r.coll.FindOne(ctx, ownedBy(userID, id)).Decode(&doc)
	if err != nil {
		return nil, mongodb.MapError(err, "conversation", id)
	}
	return toDomain(doc)
}

// List returns a page of the user's conversations, most recently updated
// first, without their messages.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, page domain.Page) ([]*domain.Conversation, int, error) {
	filter := bson.M{"user_id": userID.String()}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count conversations: %w", err)
	}
	if total == 0 {
		return []*domain.Conversation{}, 0, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(page.Offset)).
		SetLimit(int64(page.Limit)).
		SetProjection(bson.M{"messages": 0})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find conversations: %w", err)
	}
	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode conversations: %w", err)
	}

	out := make([]*domain.Conversation, 0, len(docs))
	for _, d := range docs {
		c, err := toDomain(d)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, int(total), nil
}

// AppendMessages pushes msgs to the end of the conversation and bumps its
// updated_at to the last message's time.
func (r *Repo) AppendMessages(ctx context.Context, userID, id uuid.UUID, msgs ...domain.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	docs := make([]messageDoc, 0, len(msgs))
	for _, m := range msgs {
		docs = append(docs, toMessageDoc(m))
	}

	res, err := r.coll.UpdateOne(ctx, ownedBy(userID, id), bson.M{
		"$push": bson.M{"messages": bson.M{"$each": docs}},
		"$set":  bson.M{"updated_at": msgs[len(msgs)-1].CreatedAt},
	})
	if err != nil {
		return mongodb.MapError(err, "conversation", id)
	}
	if res.MatchedCount == 0 {
		return mongodb.MapError(mongo.ErrNoDocuments, "conversation", id)
	}
	return nil
}

// Delete removes a conversation.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, ownedBy(userID, id))
	if err != nil {
		return mongodb.MapError(err, "conversation", id)
	}
	if res.DeletedCount == 0 {
		return mongodb.MapError(mongo.ErrNoDocuments, "conversation", id)
	}
	return nil
}

func ownedBy(userID, id uuid.UUID) bson.M {
	return bson.M{"_id": id.String(), "user_id": userID.String()}
}

func fromDomain(c *domain.Conversation) document {
	doc := document{
		ID:        c.ID.String(),
		UserID:    c.UserID.String(),
		Title:     c.Title,
		Messages:  make([]messageDoc, 0, len(c.Messages)),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.LessonID != nil {
		s := c.LessonID.String()
		doc.LessonID = &s
	}
	for _, m := range c.Messages {
		doc.Messages = append(doc.Messages, toMessageDoc(m))
	}
	return doc
}

func toMessageDoc(m domain.ChatMessage) messageDoc {
	return messageDoc{
		Role:      string(m.Role),
		Content:   m.Content,
		Model:     m.Model,
		CreatedAt: m.CreatedAt,
	}
}

func toDomain(d document) (*domain.Conversation, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("conversation id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("conversation %s user id: %w", d.ID, err)
	}

	c := &domain.Conversation{
		ID:        id,
		UserID:    userID,
		Title:     d.Title,
		Messages:  make([]domain.ChatMessage, 0, len(d.Messages)),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	if d.LessonID != nil {
		lessonID, err := uuid.Parse(*d.LessonID)
		if err != nil {
			return nil, fmt.Errorf("conversation %s lesson id: %w", d.ID, err)
		}
		c.LessonID = &lessonID
	}
	for _, m := range d.Messages {
		c.Messages = append(c.Messages, domain.ChatMessage{
			Role:      domain.ChatRole(m.Role),
			Content:   m.Content,
			Model:     m.Model,
			CreatedAt: m.CreatedAt.UTC(),
		})
	}
	return c, nil
}
