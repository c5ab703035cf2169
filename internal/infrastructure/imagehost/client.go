// Package imagehost talks to the external image hosting service: a
// multipart upload endpoint returning a canonical secure URL plus a
// derived identifier used to build transformation URLs.
package imagehost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"blognest-backend/internal/config"
)

// Uploader is what the upload mediator depends on.
type Uploader interface {
	Upload(ctx context.Context, p UploadParams) (*UploadResult, error)
}

// UploadParams describes one file to forward to the host.
type UploadParams struct {
	FileName    string
	ContentType string
	Folder      string
	Body        io.Reader
}

// UploadResult mirrors the host's upload response.
type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client is the HTTP implementation of Uploader.
type Client struct {
	cfg        config.ImageHostConfig
	httpClient *http.Client
}

func NewClient(cfg config.ImageHostConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Upload POSTs the file as a multipart body carrying the upload
// preset, destination folder and resource type.
func (c *Client) Upload(ctx context.Context, p UploadParams) (*UploadResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		var err error
		defer func() { pw.CloseWithError(err) }()

		if err = mw.WriteField("upload_preset", c.cfg.UploadPreset); err != nil {
			return
		}
		if p.Folder != "" {
			if err = mw.WriteField("folder", p.Folder); err != nil {
				return
			}
		}
		if err = mw.WriteField("resource_type", "image"); err != nil {
			return
		}
		if c.cfg.APIKey != "" {
			if err = mw.WriteField("api_key", c.cfg.APIKey); err != nil {
				return
			}
		}

		var part io.Writer
		part, err = mw.CreateFormFile("file", p.FileName)
		if err != nil {
			return
		}
		if _, err = io.Copy(part, p.Body); err != nil {
			return
		}
		err = mw.Close()
	}()

	endpoint := fmt.Sprintf("%s/%s/image/upload", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var er errorResponse
		if json.Unmarshal(body, &er) == nil && er.Error.Message != "" {
			return nil, fmt.Errorf("image host rejected upload: %s", er.Error.Message)
		}
		return nil, fmt.Errorf("image host rejected upload: status %d", resp.StatusCode)
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("image host response missing secure URL")
	}

	return &result, nil
}
