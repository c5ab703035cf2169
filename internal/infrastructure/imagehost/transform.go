package imagehost

import (
	"fmt"
	"strings"
)

// TransformOptions selects the URL-based transformations the host
// applies on delivery. Zero values mean "not requested".
type TransformOptions struct {
	Width   int
	Height  int
	Crop    string // e.g. fill, fit, thumb
	Quality string // e.g. auto, 80
	Format  string // e.g. auto, webp
}

// defaultTransform is applied when no options are given.
const defaultTransform = "q_auto,f_auto"

// segment renders the <code>_<value> transformation path segment.
func (o TransformOptions) segment() string {
	parts := make([]string, 0, 5)
	if o.Width > 0 {
		parts = append(parts, fmt.Sprintf("w_%d", o.Width))
	}
	if o.Height > 0 {
		parts = append(parts, fmt.Sprintf("h_%d", o.Height))
	}
	if o.Crop != "" {
		parts = append(parts, "c_"+o.Crop)
	}
	if o.Quality != "" {
		parts = append(parts, "q_"+o.Quality)
	}
	if o.Format != "" {
		parts = append(parts, "f_"+o.Format)
	}
	if len(parts) == 0 {
		return defaultTransform
	}
	return strings.Join(parts, ",")
}

// TransformURL builds a delivery URL for a derived identifier. Pure
// URL construction, no I/O.
func (c *Client) TransformURL(publicID string, opts TransformOptions) string {
	return fmt.Sprintf(
		"%s/%s/image/upload/%s/%s",
		strings.TrimRight(c.cfg.DeliveryURL, "/"),
		c.cfg.CloudName,
		opts.segment(),
		strings.TrimLeft(publicID, "/"),
	)
}

// ThumbnailURL rewrites a delivery URL to a square thumbnail by
// splicing a transformation segment after the upload path. URLs not
// shaped like delivery URLs are returned unchanged.
func ThumbnailURL(url string, size int) string {
	const marker = "/upload/"
	idx := strings.Index(url, marker)
	if idx < 0 || size <= 0 {
		return url
	}
	segment := fmt.Sprintf("c_thumb,w_%d,h_%d,%s", size, size, defaultTransform)
	return url[:idx+len(marker)] + segment + "/" + url[idx+len(marker):]
}
