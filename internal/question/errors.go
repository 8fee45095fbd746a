package question

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")

	ErrPageOutOfRange   = fmt.Errorf("page out of range: %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category: %w", ErrNotFound)
	ErrQuestionNotFound = fmt.Errorf("question: %w", ErrNotFound)

	// ErrConstraint marks a well-formed write the store refused
	// (foreign key, not-null, check).
	ErrConstraint = errors.New("constraint violation")
	// ErrStoreUnavailable marks connectivity or unexpected store failures.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ErrorKind names the class of err for structured logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConstraint):
		return "constraint"
	case errors.Is(err, ErrStoreUnavailable):
		return "unavailable"
	default:
		return "unknown"
	}
}
