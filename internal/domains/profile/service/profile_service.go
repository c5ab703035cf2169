package service

import (
	"context"
	"errors"
	"fmt"

	"blognest-backend/internal/config"
	"blognest-backend/internal/domains/profile"
	"blognest-backend/internal/session"
)

// profileService implements profile.Service.
type profileService struct {
	repo    profile.Repository
	session *session.Holder
	limits  config.ContentConfig
}

func NewProfileService(repo profile.Repository, sess *session.Holder, limits config.ContentConfig) profile.Service {
	return &profileService{
		repo:    repo,
		session: sess,
		limits:  limits,
	}
}

func (s *profileService) GetProfile(ctx context.Context, uid string) (*profile.Profile, error) {
	if uid == "" {
		return nil, profile.ErrProfileNotFound
	}
	return s.repo.GetByUID(ctx, uid)
}

// GetOrCreateProfile reads the profile, seeding it from the identity
// on first access.
func (s *profileService) GetOrCreateProfile(ctx context.Context, identity *session.Identity) (*profile.Profile, error) {
	if identity == nil || identity.UID == "" {
		return nil, session.ErrUnauthenticated
	}

	p, err := s.repo.GetByUID(ctx, identity.UID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, profile.ErrProfileNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &profile.Profile{
		UID:         identity.UID,
		DisplayName: identity.DisplayName,
		PhotoURL:    identity.PhotoURL,
		Tags:        []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return created, nil
}

func (s *profileService) UpdateMyProfile(ctx context.Context, req *profile.UpdateProfileRequest) (*profile.Profile, error) {
	identity, err := s.session.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	normalized, err := req.ValidateAndNormalize(s.limits)
	if err != nil {
		return nil, err
	}

	// First update ever may race first read; make sure the row exists.
	if _, err := s.GetOrCreateProfile(ctx, identity); err != nil {
		return nil, err
	}

	return s.repo.UpdatePartial(ctx, identity.UID, &normalized)
}
