package profile

import (
	"time"
)

// Profile is the per-user public profile, keyed 1:1 by the auth
// provider's uid. Only the owning user may mutate it; it is created
// lazily on first access and never deleted by this system.
type Profile struct {
	UID         string    `json:"uid" db:"uid"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Nickname    string    `json:"nickname" db:"nickname"`
	Bio         string    `json:"bio" db:"bio"`
	Tags        []string  `json:"tags" db:"tags"`
	PhotoURL    string    `json:"photo_url" db:"photo_url"`
	SiteBgURL   string    `json:"site_bg_url" db:"site_bg_url"`
	AuthorBgURL string    `json:"author_bg_url" db:"author_bg_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsComplete reports whether the profile carries enough to present
// an author byline: display name and bio both non-empty.
func (p *Profile) IsComplete() bool {
	return p.DisplayName != "" && p.Bio != ""
}
