package profile

import (
	"errors"

	"blognest-backend/internal/session"
	"blognest-backend/internal/shared/validate"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

// ToErrorCode converts an error to an API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return "PROFILE_NOT_FOUND"
	case errors.Is(err, session.ErrUnauthenticated):
		return "UNAUTHENTICATED"
	case errors.Is(err, session.ErrForbidden):
		return "FORBIDDEN"
	case validate.IsValidationError(err):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return 404
	case errors.Is(err, session.ErrUnauthenticated):
		return 401
	case errors.Is(err, session.ErrForbidden):
		return 403
	case validate.IsValidationError(err):
		return 400
	default:
		return 500
	}
}
