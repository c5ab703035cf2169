package profile

import (
	"context"

	"blognest-backend/internal/session"
)

// Service defines profile operations.
type Service interface {
	// GetProfile is a public read. Errors: ErrProfileNotFound.
	GetProfile(ctx context.Context, uid string) (*Profile, error)

	// GetOrCreateProfile reads the identity's profile, creating it
	// with defaults from the identity on first access.
	GetOrCreateProfile(ctx context.Context, identity *session.Identity) (*Profile, error)

	// UpdateMyProfile validates the partial update and persists it
	// as a merge for the authenticated identity's own profile.
	// Errors: session.ErrUnauthenticated, validation errors.
	UpdateMyProfile(ctx context.Context, req *UpdateProfileRequest) (*Profile, error)
}
