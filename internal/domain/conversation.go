package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a tutor chat thread owned by one user.
type Conversation struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	LessonID  *uuid.UUID
	Messages  []ChatMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChatMessage is one turn in a conversation.
type ChatMessage struct {
	Role      ChatRole
	Content   string
	Model     string
	CreatedAt time.Time
}
