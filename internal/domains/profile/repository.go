package profile

import (
	"context"
)

// Repository defines profile data access.
type Repository interface {
	// GetByUID returns ErrProfileNotFound when absent.
	GetByUID(ctx context.Context, uid string) (*Profile, error)

	// Create inserts a new profile with server-assigned timestamps.
	Create(ctx context.Context, p *Profile) (*Profile, error)

	// UpdatePartial merges only the request's present fields into
	// storage and bumps updated_at. Returns the merged view.
	// Errors: ErrProfileNotFound.
	UpdatePartial(ctx context.Context, uid string, req *UpdateProfileRequest) (*Profile, error)
}
