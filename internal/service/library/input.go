package library

import (
	"strings"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/validation"
)

// CreateInput holds the fields of a new book.
type CreateInput struct {
	Title       string   `json:"title" validate:"required,max=300"`
	Author      string   `json:"author" validate:"required,max=200"`
	Subject     *string  `json:"subject" validate:"omitempty,max=100"`
	GradeLevel  *int     `json:"gradeLevel" validate:"omitempty,min=1,max=12"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Tags        []string `json:"tags" validate:"max=20,dive,required,max=50"`
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	if err := validation.Default().Struct(i); err != nil {
		return err
	}
	var errs []domain.FieldError
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "title must not be blank"})
	}
	if strings.TrimSpace(i.Author) == "" {
		errs = append(errs, domain.FieldError{Field: "author", Message: "author must not be blank"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput is a partial update. Nil fields are left unchanged; a nil
// Tags slice keeps the tags, an empty one clears them.
type UpdateInput struct {
	Title       *string  `json:"title" validate:"omitempty,max=300"`
	Author      *string  `json:"author" validate:"omitempty,max=200"`
	Subject     *string  `json:"subject" validate:"omitempty,max=100"`
	GradeLevel  *int     `json:"gradeLevel" validate:"omitempty,min=1,max=12"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,required,max=50"`
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	if err := validation.Default().Struct(i); err != nil {
		return err
	}
	var errs []domain.FieldError
	if i.Title != nil && strings.TrimSpace(*i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "title must not be blank"})
	}
	if i.Author != nil && strings.TrimSpace(*i.Author) == "" {
		errs = append(errs, domain.FieldError{Field: "author", Message: "author must not be blank"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput filters and paginates the caller's library.
type ListInput struct {
	Subject    *string `json:"subject" validate:"omitempty,max=100"`
	GradeLevel *int    `json:"gradeLevel" validate:"omitempty,min=1,max=12"`
	Search     *string `json:"search" validate:"omitempty,max=200"`
	Limit      int     `json:"limit" validate:"min=0,max=100"`
	Offset     int     `json:"offset" validate:"min=0"`
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	return validation.Default().Struct(i)
}

// ListResult is a page of books with the total match count.
type ListResult struct {
	Books []*domain.Book
	Total int
}

// normalizeTags stores tags in domain.NormalizeText form, dropping
// empties and duplicates while keeping first-seen order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = domain.NormalizeText(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// normalizedPtr is trimPtr for values compared in normalized form.
func normalizedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := domain.NormalizeText(*s)
	if v == "" {
		return nil
	}
	return &v
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
