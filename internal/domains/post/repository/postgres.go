package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blognest-backend/internal/domains/post"
	"blognest-backend/internal/shared/backenderr"
	"blognest-backend/internal/shared/utils"
	"blognest-backend/pkg/cache"
	"blognest-backend/pkg/logger"
)

// postgresRepository implements post.Repository on pgx, with the
// published-tag index cached in Redis.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) post.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	tagsCacheKey = "posts:published:tags"
	tagsCacheTTL = 5 * time.Minute
)

const postColumns = `id, title, content_html, tags, status, cover_url, slug, author_id, created_at, updated_at`

func scanPost(row pgx.Row) (*post.Post, error) {
	var p post.Post
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.ContentHTML,
		&p.Tags,
		&p.Status,
		&p.CoverURL,
		&p.Slug,
		&p.AuthorID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	query := `
        INSERT INTO posts (id, title, content_html, tags, status, cover_url, slug, author_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + postColumns

	created, err := scanPost(r.pool.QueryRow(
		ctx,
		query,
		p.ID,
		p.Title,
		p.ContentHTML,
		p.Tags,
		p.Status,
		p.CoverURL,
		p.Slug,
		p.AuthorID,
	))
	if err != nil {
		if isSlugUniqueViolation(err) {
			return nil, post.ErrSlugConflict
		}
		return nil, backenderr.Wrap(backenderr.CodeWriteFailed, err)
	}

	r.invalidateTagCache(ctx)
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, backenderr.Wrap(backenderr.CodeQueryFailed, err)
	}
	return p, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*post.Post, error) {
	if slug == "" {
		return nil, post.ErrPostNotFound
	}

	// First match wins; the partial unique index keeps it singular.
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1 ORDER BY created_at ASC LIMIT 1`

	p, err := scanPost(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, backenderr.Wrap(backenderr.CodeQueryFailed, err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, f post.Filter) ([]post.Post, error) {
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 6)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.PublishedOnly {
		clauses = append(clauses, fmt.Sprintf("status = %s", arg(post.StatusPublished)))
	}
	if f.AuthorID != "" {
		clauses = append(clauses, fmt.Sprintf("author_id = %s", arg(f.AuthorID)))
	}
	if f.Tag != "" {
		clauses = append(clauses, fmt.Sprintf("tags @> ARRAY[%s]::text[]", arg(f.Tag)))
	}
	if f.Cursor != nil {
		clauses = append(clauses, fmt.Sprintf("(created_at, id) < (%s, %s)", arg(f.Cursor.CreatedAt), arg(f.Cursor.ID)))
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(clauses) > 0 {
		query += ` WHERE ` + utils.JoinWithAnd(clauses)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ` + arg(f.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, backenderr.Wrap(backenderr.CodeQueryFailed, err)
	}
	defer rows.Close()

	posts := make([]post.Post, 0, f.Limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, backenderr.Wrap(backenderr.CodeQueryFailed, err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, backenderr.Wrap(backenderr.CodeQueryFailed, err)
	}
	return posts, nil
}

// UpdatePartial merges present fields only; COALESCE keeps stored
// values where the patch sent nothing. author_id is never touched.
func (r *postgresRepository) UpdatePartial(ctx context.Context, id uuid.UUID, patch *post.Patch) (*post.Post, error) {
	query := `
        UPDATE posts SET
            title        = COALESCE($2, title),
            content_html = COALESCE($3, content_html),
            tags         = COALESCE($4, tags),
            status       = COALESCE($5, status),
            cover_url    = COALESCE($6, cover_url),
            slug         = COALESCE($7, slug),
            updated_at   = now()
        WHERE id = $1
        RETURNING ` + postColumns

	updated, err := scanPost(r.pool.QueryRow(
		ctx,
		query,
		id,
		patch.Title,
		patch.ContentHTML,
		patch.Tags,
		patch.Status,
		patch.CoverURL,
		patch.Slug,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		if isSlugUniqueViolation(err) {
			return nil, post.ErrSlugConflict
		}
		return nil, backenderr.Wrap(backenderr.CodeWriteFailed, err)
	}

	r.invalidateTagCache(ctx)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return backenderr.Wrap(backenderr.CodeWriteFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}

	r.invalidateTagCache(ctx)
	return nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND slug <> '' AND id <> $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, backenderr.Wrap(backenderr.CodeQueryFailed, err)
	}
	return exists, nil
}

func (r *postgresRepository) PublishedTags(ctx context.Context) ([]string, error) {
	var tags []string
	if found, err := r.cache.Get(ctx, tagsCacheKey, &tags); err == nil && found {
		return tags, nil
	} else if err != nil {
		logger.Warn("tag cache read failed", err)
	}

	query := `
        SELECT DISTINCT unnest(tags) AS tag
        FROM posts
        WHERE status = 'published'
        ORDER BY tag`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, backenderr.Wrap(backenderr.CodeQueryFailed, err)
	}
	defer rows.Close()

	tags = make([]string, 0, 16)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, backenderr.Wrap(backenderr.CodeQueryFailed, err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, backenderr.Wrap(backenderr.CodeQueryFailed, err)
	}

	if err := r.cache.Set(ctx, tagsCacheKey, tags, tagsCacheTTL); err != nil {
		logger.Warn("tag cache write failed", err)
	}
	return tags, nil
}

func (r *postgresRepository) invalidateTagCache(ctx context.Context) {
	if err := r.cache.Delete(ctx, tagsCacheKey); err != nil {
		logger.Warn("tag cache invalidation failed", err)
	}
}

// isSlugUniqueViolation matches the partial unique index on slug.
func isSlugUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return strings.Contains(pgErr.ConstraintName, "slug") || strings.Contains(pgErr.Message, "slug")
	}
	return false
}
