package post

import (
	"errors"

	"blognest-backend/internal/session"
	"blognest-backend/internal/shared/validate"
)

var (
	ErrPostNotFound = errors.New("post not found")

	// ErrSlugConflict is retryable with a different slug. The
	// check-then-act uniqueness probe is best-effort under races.
	ErrSlugConflict = errors.New("a post with this slug already exists")

	// ErrNotOwner means an otherwise-authorized identity tried to
	// touch a post it did not author.
	ErrNotOwner = errors.New("post can only be modified by its author")

	ErrInvalidCursor = errors.New("invalid pagination cursor")
)

// ToErrorCode converts an error to an API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return "POST_NOT_FOUND"
	case errors.Is(err, ErrSlugConflict):
		return "SLUG_CONFLICT"
	case errors.Is(err, ErrNotOwner), errors.Is(err, session.ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, session.ErrUnauthenticated):
		return "UNAUTHENTICATED"
	case errors.Is(err, ErrInvalidCursor):
		return "INVALID_CURSOR"
	case validate.IsValidationError(err):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return 404
	case errors.Is(err, ErrSlugConflict):
		return 409
	case errors.Is(err, ErrNotOwner), errors.Is(err, session.ErrForbidden):
		return 403
	case errors.Is(err, session.ErrUnauthenticated):
		return 401
	case errors.Is(err, ErrInvalidCursor):
		return 400
	case validate.IsValidationError(err):
		return 400
	default:
		return 500
	}
}
