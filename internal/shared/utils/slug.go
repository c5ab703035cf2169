package utils

import (
	"regexp"
	"strings"
)

// MaxSlugLength caps derived slugs to keep URLs readable.
const MaxSlugLength = 50

var (
	slugStripRe     = regexp.MustCompile(`[^\w\s-]`)
	slugSeparatorRe = regexp.MustCompile(`[\s_-]+`)
)

// DeriveSlug turns a post title into a URL-safe slug candidate.
// "Hello, World!  Test_123" becomes "hello-world-test-123".
// Titles with no usable characters derive to "".
func DeriveSlug(title string) string {
	s := strings.ToLower(title)

	// Drop everything except word characters, whitespace and hyphens.
	s = slugStripRe.ReplaceAllString(s, "")

	// Runs of whitespace, underscores and hyphens collapse to one hyphen.
	s = slugSeparatorRe.ReplaceAllString(s, "-")

	s = strings.Trim(s, "-")

	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}

	return s
}
