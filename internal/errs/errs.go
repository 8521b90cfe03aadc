package errs

import (
	"errors"
	"fmt"
)

var (
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrFaqNotFound      = errors.New("faq not found")

	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
	ErrSelfDeleteDenied = errors.New("cannot delete own account")
)

// ConflictError blocks a delete while other rows still reference the target
// (subcategories or tickets of a category, tickets of a user).
type ConflictError struct {
	Resource string
	Blocker  string
	Count    int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s cannot be deleted: %d referencing %s", e.Resource, e.Count, e.Blocker)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// NotFound reports whether err is one of the not-found sentinels.
func NotFound(err error) bool {
	return errors.Is(err, ErrTicketNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrFaqNotFound)
}
