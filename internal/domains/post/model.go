package post

import (
	"time"

	"github.com/google/uuid"
)

// Status is the post lifecycle state. The only transitions are
// draft ⇄ published; deletion is terminal from either state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Post is a blog entry. Keyed by a generated id with an optional
// human-readable slug as secondary key; a non-empty slug is unique
// across all posts. Only AuthorID may update, publish, unpublish or
// delete it.
type Post struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	ContentHTML string    `json:"content_html" db:"content_html"` // stored as trusted markup
	Tags        []string  `json:"tags" db:"tags"`
	Status      Status    `json:"status" db:"status"`
	CoverURL    string    `json:"cover_url" db:"cover_url"`
	Slug        string    `json:"slug" db:"slug"`
	AuthorID    string    `json:"author_id" db:"author_id"` // immutable after creation
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
