package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"blognest-backend/internal/config"
	"blognest-backend/internal/domains/post"
	"blognest-backend/internal/session"
	"blognest-backend/internal/shared/utils"
)

// postService implements post.Service.
type postService struct {
	repo    post.Repository
	session *session.Holder
	limits  config.ContentConfig
	perPage int
}

const maxPageSize = 100

func NewPostService(repo post.Repository, sess *session.Holder, cfg *config.Config) post.Service {
	return &postService{
		repo:    repo,
		session: sess,
		limits:  cfg.Content,
		perPage: cfg.Site.PostsPerPage,
	}
}

func (s *postService) ListPublished(ctx context.Context, q post.ListQuery) ([]post.Post, string, error) {
	return s.list(ctx, q, post.Filter{PublishedOnly: true, Tag: q.Tag})
}

func (s *postService) ListMine(ctx context.Context, q post.ListQuery) ([]post.Post, string, error) {
	identity, err := s.session.RequireAdmin(ctx)
	if err != nil {
		return nil, "", err
	}
	return s.list(ctx, q, post.Filter{AuthorID: identity.UID, Tag: q.Tag})
}

func (s *postService) list(ctx context.Context, q post.ListQuery, f post.Filter) ([]post.Post, string, error) {
	f.Limit = q.Limit
	if f.Limit <= 0 {
		f.Limit = s.perPage
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}

	cursor, err := post.DecodeCursor(q.Cursor)
	if err != nil {
		return nil, "", err
	}
	f.Cursor = cursor

	posts, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, "", err
	}

	next := ""
	if len(posts) == f.Limit {
		next = post.EncodeCursor(&posts[len(posts)-1])
	}
	return posts, next, nil
}

// GetByIDOrSlug attempts the id lookup when the key parses as a
// generated identifier, then falls back to the slug lookup on miss.
func (s *postService) GetByIDOrSlug(ctx context.Context, key string) (*post.Post, error) {
	if key == "" {
		return nil, post.ErrPostNotFound
	}

	if id, err := uuid.Parse(key); err == nil {
		p, err := s.repo.GetByID(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, post.ErrPostNotFound) {
			return nil, err
		}
	}

	return s.repo.GetBySlug(ctx, key)
}

func (s *postService) Create(ctx context.Context, patch *post.Patch) (*post.Post, error) {
	identity, err := s.session.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	normalized, err := patch.ValidateAndNormalize(true, s.limits)
	if err != nil {
		return nil, err
	}

	slug := ""
	switch {
	case normalized.Slug != nil:
		slug = *normalized.Slug
		if slug != "" {
			// Best-effort uniqueness probe; see the repository contract.
			taken, err := s.repo.ExistsBySlug(ctx, slug, uuid.Nil)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, post.ErrSlugConflict
			}
		}
	default:
		// No slug sent at all: derive a candidate from the title. A
		// taken or empty candidate leaves the post slugless rather
		// than failing the create.
		if candidate := utils.DeriveSlug(*normalized.Title); candidate != "" {
			taken, err := s.repo.ExistsBySlug(ctx, candidate, uuid.Nil)
			if err != nil {
				return nil, err
			}
			if !taken {
				slug = candidate
			}
		}
	}

	status := post.StatusDraft
	if normalized.Status != nil {
		status = post.Status(*normalized.Status)
	}

	newPost := &post.Post{
		ID:          uuid.New(),
		Title:       *normalized.Title,
		ContentHTML: *normalized.ContentHTML,
		Tags:        []string{},
		Status:      status,
		Slug:        slug,
		AuthorID:    identity.UID,
	}
	if normalized.Tags != nil {
		newPost.Tags = *normalized.Tags
	}
	if normalized.CoverURL != nil {
		newPost.CoverURL = *normalized.CoverURL
	}

	created, err := s.repo.Create(ctx, newPost)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return created, nil
}

func (s *postService) Update(ctx context.Context, idOrSlug string, patch *post.Patch) (*post.Post, error) {
	identity, err := s.session.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	target, err := s.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if target.AuthorID != identity.UID {
		return nil, post.ErrNotOwner
	}

	normalized, err := patch.ValidateAndNormalize(false, s.limits)
	if err != nil {
		return nil, err
	}

	// A new non-empty slug different from the stored one re-runs the
	// uniqueness probe, excluding the target itself.
	if normalized.Slug != nil && *normalized.Slug != "" && *normalized.Slug != target.Slug {
		taken, err := s.repo.ExistsBySlug(ctx, *normalized.Slug, target.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, post.ErrSlugConflict
		}
	}

	return s.repo.UpdatePartial(ctx, target.ID, &normalized)
}

func (s *postService) Publish(ctx context.Context, id string) (*post.Post, error) {
	return s.setStatus(ctx, id, post.StatusPublished)
}

func (s *postService) Unpublish(ctx context.Context, id string) (*post.Post, error) {
	return s.setStatus(ctx, id, post.StatusDraft)
}

func (s *postService) setStatus(ctx context.Context, id string, status post.Status) (*post.Post, error) {
	st := string(status)
	return s.Update(ctx, id, &post.Patch{Status: &st})
}

func (s *postService) Delete(ctx context.Context, id string) error {
	identity, err := s.session.RequireAdmin(ctx)
	if err != nil {
		return err
	}

	target, err := s.GetByIDOrSlug(ctx, id)
	if err != nil {
		return err
	}
	if target.AuthorID != identity.UID {
		return post.ErrNotOwner
	}

	return s.repo.Delete(ctx, target.ID)
}

func (s *postService) AllTags(ctx context.Context) ([]string, error) {
	return s.repo.PublishedTags(ctx)
}
