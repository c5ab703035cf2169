package service

import (
	"context"
	"fmt"
	"strings"

	"blognest-backend/internal/config"
	"blognest-backend/internal/domains/upload"
	"blognest-backend/internal/infrastructure/imagehost"
)

// uploadService implements upload.Service.
type uploadService struct {
	host imagehost.Uploader
	cfg  config.UploadConfig
}

func NewUploadService(host imagehost.Uploader, cfg config.UploadConfig) upload.Service {
	return &uploadService{
		host: host,
		cfg:  cfg,
	}
}

func (s *uploadService) UploadImage(ctx context.Context, f upload.File, category string) (*upload.Result, error) {
	// Both checks run before any network call.
	if !s.typeAllowed(f.ContentType) {
		return nil, fmt.Errorf("%w: %s", upload.ErrInvalidFile, f.ContentType)
	}
	if f.Size > s.cfg.MaxImageSizeBytes() {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", upload.ErrFileTooLarge, f.Size, s.cfg.MaxImageSizeBytes())
	}

	result, err := s.host.Upload(ctx, imagehost.UploadParams{
		FileName:    f.Name,
		ContentType: f.ContentType,
		Folder:      category,
		Body:        f.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", upload.ErrUploadFailed, err)
	}

	return &upload.Result{
		URL:       result.SecureURL,
		DerivedID: result.PublicID,
		Width:     result.Width,
		Height:    result.Height,
		Format:    result.Format,
		ByteSize:  result.Bytes,
	}, nil
}

// UploadImages collects per-file failures rather than aborting the
// whole batch.
func (s *uploadService) UploadImages(ctx context.Context, files []upload.File, category string) ([]upload.Result, []upload.FileError) {
	results := make([]upload.Result, 0, len(files))
	var failures []upload.FileError

	for _, f := range files {
		res, err := s.UploadImage(ctx, f, category)
		if err != nil {
			failures = append(failures, upload.FileError{Name: f.Name, Err: err})
			continue
		}
		results = append(results, *res)
	}
	return results, failures
}

func (s *uploadService) typeAllowed(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, allowed := range s.cfg.AllowedImageTypes {
		if ct == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
