package post

import (
	"context"
)

// Service defines post operations.
type Service interface {
	// ListPublished returns published posts newest-first, optionally
	// filtered by tag, with an opaque next-page cursor ("" on the
	// last page).
	ListPublished(ctx context.Context, q ListQuery) ([]Post, string, error)

	// GetByIDOrSlug tries a direct id lookup, then falls back to a
	// slug lookup on miss. Errors: ErrPostNotFound.
	GetByIDOrSlug(ctx context.Context, key string) (*Post, error)

	// ListMine lists the admin identity's own posts, any status,
	// same ordering as ListPublished.
	ListMine(ctx context.Context, q ListQuery) ([]Post, string, error)

	// Create validates in create mode, checks explicit-slug
	// uniqueness, stamps author and timestamps, and persists.
	// Errors: session errors, validation errors, ErrSlugConflict.
	Create(ctx context.Context, patch *Patch) (*Post, error)

	// Update resolves the target by id-or-slug, enforces ownership,
	// validates in update mode, re-checks a changed slug excluding
	// the target itself, and persists a partial merge.
	Update(ctx context.Context, idOrSlug string, patch *Patch) (*Post, error)

	// Publish and Unpublish are sugar for a status-only update.
	Publish(ctx context.Context, id string) (*Post, error)
	Unpublish(ctx context.Context, id string) (*Post, error)

	// Delete enforces ownership, then removes the post permanently.
	Delete(ctx context.Context, id string) error

	// AllTags returns the sorted union of tag sets across all
	// published posts. Full-collection scan; fine at blog scale.
	AllTags(ctx context.Context) ([]string, error)
}
