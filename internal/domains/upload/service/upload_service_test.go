package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blognest-backend/internal/config"
	"blognest-backend/internal/domains/upload"
	"blognest-backend/internal/infrastructure/imagehost"
)

type fakeUploader struct {
	calls  int
	params []imagehost.UploadParams
	err    error
}

func (u *fakeUploader) Upload(_ context.Context, p imagehost.UploadParams) (*imagehost.UploadResult, error) {
	u.calls++
	u.params = append(u.params, p)
	if u.err != nil {
		return nil, u.err
	}
	return &imagehost.UploadResult{
		SecureURL: "https://res.example.com/demo/image/upload/v1/" + p.Folder + "/" + p.FileName,
		PublicID:  p.Folder + "/" + p.FileName,
		Width:     800,
		Height:    600,
		Format:    "jpg",
		Bytes:     1234,
	}, nil
}

func testCfg() config.UploadConfig {
	return config.UploadConfig{
		MaxImageSizeMB:    5,
		AllowedImageTypes: []string{"image/jpeg", "image/png", "image/webp"},
	}
}

func jpeg(name string, size int64) upload.File {
	return upload.File{
		Name:        name,
		ContentType: "image/jpeg",
		Size:        size,
		Body:        strings.NewReader("fake bytes"),
	}
}

func TestUploadImage(t *testing.T) {
	host := &fakeUploader{}
	svc := NewUploadService(host, testCfg())

	res, err := svc.UploadImage(context.Background(), jpeg("cover.jpg", 1024), "posts")
	require.NoError(t, err)
	assert.Equal(t, "posts/cover.jpg", res.DerivedID)
	assert.Equal(t, 800, res.Width)
	assert.Equal(t, 600, res.Height)
	assert.Equal(t, int64(1234), res.ByteSize)
	require.Len(t, host.params, 1)
	assert.Equal(t, "posts", host.params[0].Folder)
}

func TestUploadImageDisallowedType(t *testing.T) {
	host := &fakeUploader{}
	svc := NewUploadService(host, testCfg())

	f := jpeg("script.svg", 100)
	f.ContentType = "image/svg+xml"

	_, err := svc.UploadImage(context.Background(), f, "posts")
	assert.ErrorIs(t, err, upload.ErrInvalidFile)
	assert.Zero(t, host.calls, "rejected before any network call")
}

func TestUploadImageTypeCaseInsensitive(t *testing.T) {
	host := &fakeUploader{}
	svc := NewUploadService(host, testCfg())

	f := jpeg("cover.jpg", 100)
	f.ContentType = "IMAGE/JPEG"

	_, err := svc.UploadImage(context.Background(), f, "posts")
	assert.NoError(t, err)
}

func TestUploadImageTooLarge(t *testing.T) {
	host := &fakeUploader{}
	svc := NewUploadService(host, testCfg())

	_, err := svc.UploadImage(context.Background(), jpeg("huge.jpg", 6*1024*1024), "posts")
	assert.ErrorIs(t, err, upload.ErrFileTooLarge)
	assert.Zero(t, host.calls, "rejected before any network call")
}

func TestUploadImageHostFailure(t *testing.T) {
	host := &fakeUploader{err: errors.New("preset not found")}
	svc := NewUploadService(host, testCfg())

	_, err := svc.UploadImage(context.Background(), jpeg("cover.jpg", 100), "posts")
	assert.ErrorIs(t, err, upload.ErrUploadFailed)
	assert.Contains(t, err.Error(), "preset not found")
}

func TestUploadImagesCollectsFailures(t *testing.T) {
	host := &fakeUploader{}
	svc := NewUploadService(host, testCfg())

	bad := jpeg("huge.jpg", 6*1024*1024)
	files := []upload.File{
		jpeg("a.jpg", 100),
		bad,
		jpeg("b.jpg", 200),
	}

	results, failures := svc.UploadImages(context.Background(), files, "posts")
	assert.Len(t, results, 2)
	require.Len(t, failures, 1)
	assert.Equal(t, "huge.jpg", failures[0].Name)
	assert.ErrorIs(t, failures[0].Err, upload.ErrFileTooLarge)
	assert.Equal(t, 2, host.calls, "only valid files reach the host")
}

func TestUploadErrorMapping(t *testing.T) {
	assert.Equal(t, 400, upload.ToHTTPStatus(upload.ErrInvalidFile))
	assert.Equal(t, 413, upload.ToHTTPStatus(upload.ErrFileTooLarge))
	assert.Equal(t, 502, upload.ToHTTPStatus(upload.ErrUploadFailed))
	assert.Equal(t, 500, upload.ToHTTPStatus(assert.AnError))

	assert.Equal(t, "INVALID_FILE", upload.ToErrorCode(upload.ErrInvalidFile))
	assert.Equal(t, "FILE_TOO_LARGE", upload.ToErrorCode(upload.ErrFileTooLarge))
	assert.Equal(t, "UPLOAD_FAILED", upload.ToErrorCode(upload.ErrUploadFailed))
}
