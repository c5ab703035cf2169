package upload

import (
	"context"
)

// Service validates image files and forwards them to the external
// image host.
type Service interface {
	// UploadImage fails fast with ErrInvalidFile / ErrFileTooLarge
	// before touching the network; ErrUploadFailed wraps host
	// rejections. category selects the destination folder.
	UploadImage(ctx context.Context, f File, category string) (*Result, error)

	// UploadImages processes each file independently, collecting
	// per-file failures instead of aborting the batch.
	UploadImages(ctx context.Context, files []File, category string) ([]Result, []FileError)
}
