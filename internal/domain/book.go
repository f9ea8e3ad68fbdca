package domain

import (
	"time"

	"github.com/google/uuid"
)

// Book is an entry in a user's library.
type Book struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Author      string
	Subject     *string
	GradeLevel  *int
	Description *string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookFilter narrows a library listing.
type BookFilter struct {
	Subject    *string
	GradeLevel *int
	Search     *string
}
