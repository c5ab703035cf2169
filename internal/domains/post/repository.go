package post

import (
	"context"

	"github.com/google/uuid"
)

// Filter selects posts for listing. Zero values mean "no filter".
type Filter struct {
	Limit         int
	Cursor        *Cursor
	Tag           string
	AuthorID      string
	PublishedOnly bool
}

// Repository defines post data access.
type Repository interface {
	// Create inserts a new post. Errors: ErrSlugConflict when the
	// backend enforces slug uniqueness.
	Create(ctx context.Context, p *Post) (*Post, error)

	// GetByID returns ErrPostNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// GetBySlug returns the first post with the given non-empty
	// slug, or ErrPostNotFound.
	GetBySlug(ctx context.Context, slug string) (*Post, error)

	// List returns posts newest-createdAt-first (id as tiebreak),
	// starting after the cursor when set.
	List(ctx context.Context, f Filter) ([]Post, error)

	// UpdatePartial merges only the patch's present fields and
	// bumps updated_at. Errors: ErrPostNotFound, ErrSlugConflict.
	UpdatePartial(ctx context.Context, id uuid.UUID, patch *Patch) (*Post, error)

	// Delete returns ErrPostNotFound when the target is absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsBySlug reports whether any post other than excludeID
	// carries the slug. Check-then-act: not atomic with a following
	// write.
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// PublishedTags returns the sorted distinct tags of published
	// posts.
	PublishedTags(ctx context.Context) ([]string, error)
}
