package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blognest-backend/internal/domains/profile"
	"blognest-backend/internal/shared/backenderr"
)

// postgresRepository implements profile.Repository on pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) profile.Repository {
	return &postgresRepository{pool: pool}
}

const profileColumns = `uid, display_name, nickname, bio, tags, photo_url, site_bg_url, author_bg_url, created_at, updated_at`

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.UID,
		&p.DisplayName,
		&p.Nickname,
		&p.Bio,
		&p.Tags,
		&p.PhotoURL,
		&p.SiteBgURL,
		&p.AuthorBgURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) GetByUID(ctx context.Context, uid string) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE uid = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, backenderr.Wrap(backenderr.CodeQueryFailed, err)
	}
	return p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	query := `
        INSERT INTO profiles (uid, display_name, nickname, bio, tags, photo_url, site_bg_url, author_bg_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (uid) DO NOTHING
        RETURNING ` + profileColumns

	created, err := scanProfile(r.pool.QueryRow(
		ctx,
		query,
		p.UID,
		p.DisplayName,
		p.Nickname,
		p.Bio,
		p.Tags,
		p.PhotoURL,
		p.SiteBgURL,
		p.AuthorBgURL,
	))
	if err != nil {
		// DO NOTHING returns no row when another writer got there
		// first; the stored profile wins.
		if errors.Is(err, pgx.ErrNoRows) {
			return r.GetByUID(ctx, p.UID)
		}
		return nil, backenderr.Wrap(backenderr.CodeWriteFailed, err)
	}
	return created, nil
}

// UpdatePartial merges present fields only. COALESCE keeps the
// stored value wherever the caller sent nothing.
func (r *postgresRepository) UpdatePartial(ctx context.Context, uid string, req *profile.UpdateProfileRequest) (*profile.Profile, error) {
	query := `
        UPDATE profiles SET
            display_name  = COALESCE($2, display_name),
            nickname      = COALESCE($3, nickname),
            bio           = COALESCE($4, bio),
            tags          = COALESCE($5, tags),
            photo_url     = COALESCE($6, photo_url),
            site_bg_url   = COALESCE($7, site_bg_url),
            author_bg_url = COALESCE($8, author_bg_url),
            updated_at    = now()
        WHERE uid = $1
        RETURNING ` + profileColumns

	updated, err := scanProfile(r.pool.QueryRow(
		ctx,
		query,
		uid,
		req.DisplayName,
		req.Nickname,
		req.Bio,
		req.Tags,
		req.PhotoURL,
		req.SiteBgURL,
		req.AuthorBgURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, backenderr.Wrap(backenderr.CodeWriteFailed, err)
	}
	return updated, nil
}
