// Package validate holds the field rules shared by the profile and
// post validators. Everything here is pure: same input, same output,
// no I/O.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrRequiredFieldMissing = errors.New("required field missing")
	ErrInvalidURL           = errors.New("must be an absolute http(s) URL")
	ErrInvalidStatus        = errors.New("status must be draft or published")
	ErrInvalidSlug          = errors.New("slug may contain only lowercase letters, digits and internal hyphens")
	ErrTagTooLong           = errors.New("tag exceeds maximum length")
)

// SlugRe matches explicit slugs: lowercase alphanumeric runs joined
// by single internal hyphens, no leading or trailing hyphen. Same
// alphabet DeriveSlug emits.
var SlugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// stringValue unwraps the value a rule receives. Struct fields arrive
// as the pointer itself, not the pointed-to string; nil means the
// field is absent.
func stringValue(value interface{}) (string, bool) {
	v, isNil := validation.Indirect(value)
	if isNil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// HTTPURL is an ozzo rule accepting absent, "" (meaning unset) or an
// absolute http/https URL.
var HTTPURL = validation.By(func(value interface{}) error {
	s, ok := stringValue(value)
	if !ok || s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
})

// Slug is an ozzo rule accepting absent, "" or a pattern-matching slug.
var Slug = validation.By(func(value interface{}) error {
	s, ok := stringValue(value)
	if !ok || s == "" {
		return nil
	}
	if !SlugRe.MatchString(s) {
		return ErrInvalidSlug
	}
	return nil
})

// Status is an ozzo rule requiring exactly "draft" or "published"
// when the field is present.
var Status = validation.By(func(value interface{}) error {
	s, ok := stringValue(value)
	if !ok {
		return nil
	}
	if s != "draft" && s != "published" {
		return ErrInvalidStatus
	}
	return nil
})

// Tags normalizes a tag sequence: entries are trimmed, entries that
// are empty after trimming are silently dropped, any remaining entry
// longer than maxLen fails the whole operation, and the result is
// truncated to maxCount. A sequence longer than maxCount is never an
// error by itself.
func Tags(entries []string, maxCount, maxLen int) ([]string, error) {
	out := make([]string, 0, len(entries))
	for _, raw := range entries {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		if utf8.RuneCountInString(tag) > maxLen {
			return nil, fmt.Errorf("%w: %q (max %d)", ErrTagTooLong, tag, maxLen)
		}
		out = append(out, tag)
	}
	if len(out) > maxCount {
		out = out[:maxCount]
	}
	return out, nil
}

// Required reports ErrRequiredFieldMissing for a create-mode field
// that is absent or empty after trimming.
func Required(field string, value *string) error {
	if value == nil || strings.TrimSpace(*value) == "" {
		return fmt.Errorf("%w: %s", ErrRequiredFieldMissing, field)
	}
	return nil
}

// IsValidationError reports whether err comes from this layer (as
// opposed to the backend) so callers can map it to a 4xx response.
func IsValidationError(err error) bool {
	if errors.Is(err, ErrRequiredFieldMissing) ||
		errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidSlug) ||
		errors.Is(err, ErrTagTooLong) {
		return true
	}
	var verrs validation.Errors
	return errors.As(err, &verrs)
}
