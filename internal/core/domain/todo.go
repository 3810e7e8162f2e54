package domain

import "unicode/utf8"

// Field constraints enforced before any todo is persisted.
const (
	TitleMaxLen       = 100
	DescriptionMaxLen = 200
	PriorityMin       = 1
	PriorityMax       = 5
)

// Todo is a single task owned by exactly one user. OwnerID always resolves
// to an existing User.
type Todo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
	OwnerID     int64  `json:"owner_id"`
}

// Validate checks the field constraints. It returns ErrValidation wrapped
// with a field-specific message on the first violation found. Length limits
// count characters, not bytes, so multi-byte text is measured the same way
// the request validator measures it.
func (t *Todo) Validate() error {
	if n := utf8.RuneCountInString(t.Title); n < 1 || n > TitleMaxLen {
		return ValidationError("title must be between 1 and 100 characters")
	}
	if n := utf8.RuneCountInString(t.Description); n < 1 || n > DescriptionMaxLen {
		return ValidationError("description must be between 1 and 200 characters")
	}
	if t.Priority < PriorityMin || t.Priority > PriorityMax {
		return ValidationError("priority must be between 1 and 5")
	}
	return nil
}
