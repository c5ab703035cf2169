package upload

import "errors"

var (
	// ErrInvalidFile means the declared type is not in the
	// configured allow-list. Raised before any network call.
	ErrInvalidFile = errors.New("file type not allowed")

	// ErrFileTooLarge means the file exceeds the configured size
	// cap. Raised before any network call.
	ErrFileTooLarge = errors.New("file exceeds maximum size")

	// ErrUploadFailed wraps the image host's rejection.
	ErrUploadFailed = errors.New("image upload failed")
)

// ToErrorCode converts an error to an API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFile):
		return "INVALID_FILE"
	case errors.Is(err, ErrFileTooLarge):
		return "FILE_TOO_LARGE"
	case errors.Is(err, ErrUploadFailed):
		return "UPLOAD_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidFile):
		return 400
	case errors.Is(err, ErrFileTooLarge):
		return 413
	case errors.Is(err, ErrUploadFailed):
		return 502
	default:
		return 500
	}
}
