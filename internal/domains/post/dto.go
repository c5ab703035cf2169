package post

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blognest-backend/internal/config"
	"blognest-backend/internal/shared/utils"
	"blognest-backend/internal/shared/validate"
)

// Patch carries post fields for create and update. nil means the
// field is absent (leave stored value unchanged on update); a
// pointer to the zero value means "set it to empty".
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	ContentHTML *string   `json:"content_html,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Status      *string   `json:"status,omitempty"`
	CoverURL    *string   `json:"cover_url,omitempty"`
	Slug        *string   `json:"slug,omitempty"`
}

// ValidateAndNormalize checks every present field independently
// against the configured limits and returns a normalized copy. In
// create mode, title and content are required non-empty. Pure and
// deterministic: validating its own output yields the same output.
func (p Patch) ValidateAndNormalize(forCreate bool, limits config.ContentConfig) (Patch, error) {
	if forCreate {
		if err := validate.Required("title", p.Title); err != nil {
			return Patch{}, err
		}
		if err := validate.Required("content_html", p.ContentHTML); err != nil {
			return Patch{}, err
		}
	}

	err := validation.ValidateStruct(&p,
		validation.Field(&p.Title,
			validation.RuneLength(0, limits.MaxTitleLength).Error("title too long"),
		),
		validation.Field(&p.Status, validate.Status),
		validation.Field(&p.CoverURL, validate.HTTPURL),
		validation.Field(&p.Slug, validate.Slug),
	)
	if err != nil {
		return Patch{}, err
	}

	out := p
	out.Title = trimmed(p.Title)
	out.ContentHTML = trimmed(p.ContentHTML)
	out.CoverURL = trimmed(p.CoverURL)
	out.Slug = trimmed(p.Slug)

	if p.Tags != nil {
		tags, err := validate.Tags(*p.Tags, limits.MaxTagCount, limits.MaxTagLength)
		if err != nil {
			return Patch{}, err
		}
		out.Tags = &tags
	}

	return out, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// ListQuery selects a page of posts.
type ListQuery struct {
	Limit  int
	Cursor string // opaque, from the previous page's meta
	Tag    string // optional: only posts whose tag set contains it
}

// Cursor is the keyset position after the last item of a page.
type Cursor struct {
	CreatedAt time.Time `json:"c"`
	ID        uuid.UUID `json:"i"`
}

// EncodeCursor renders an opaque pagination token.
func EncodeCursor(p *Post) string {
	if p == nil {
		return ""
	}
	raw, _ := json.Marshal(Cursor{CreatedAt: p.CreatedAt, ID: p.ID})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses an opaque pagination token. "" means first page.
func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: bad cursor", ErrInvalidCursor)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: bad cursor", ErrInvalidCursor)
	}
	return &c, nil
}

// ListItem is the list-view projection: preview text and reading
// time instead of the full markup.
type ListItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	ReadingTime int       `json:"reading_time_minutes"`
	Tags        []string  `json:"tags"`
	Status      Status    `json:"status"`
	CoverURL    string    `json:"cover_url,omitempty"`
	Slug        string    `json:"slug,omitempty"`
	AuthorID    string    `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToListItem builds the preview projection using the configured
// excerpt length and words-per-minute.
func (p *Post) ToListItem(excerptLen, wpm int) ListItem {
	return ListItem{
		ID:          p.ID,
		Title:       p.Title,
		Excerpt:     utils.Excerpt(p.ContentHTML, excerptLen),
		ReadingTime: utils.ReadingTime(p.ContentHTML, wpm),
		Tags:        p.Tags,
		Status:      p.Status,
		CoverURL:    p.CoverURL,
		Slug:        p.Slug,
		AuthorID:    p.AuthorID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
