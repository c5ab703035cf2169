package utils

import (
	"regexp"
	"strings"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// StripHTML removes markup tags and collapses whitespace.
// Good enough for previews; content is stored as trusted markup.
func StripHTML(html string) string {
	text := htmlTagRe.ReplaceAllString(html, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Excerpt returns a plain-text preview of at most maxLen runes,
// cut on a word boundary with a trailing ellipsis.
func Excerpt(html string, maxLen int) string {
	text := StripHTML(html)
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := string(runes[:maxLen])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ") + "…"
}

// ReadingTime estimates minutes to read the given markup at wpm
// words per minute. Always at least 1 minute for non-empty content.
func ReadingTime(html string, wpm int) int {
	if wpm <= 0 {
		wpm = 200
	}

	words := len(strings.Fields(StripHTML(html)))
	if words == 0 {
		return 0
	}

	minutes := (words + wpm - 1) / wpm
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
