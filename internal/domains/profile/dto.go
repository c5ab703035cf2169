package profile

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blognest-backend/internal/config"
	"blognest-backend/internal/shared/validate"
)

// UpdateProfileRequest is a partial update: nil means "leave the
// stored value unchanged", a pointer to the empty string means
// "clear it". PUT /v1/me/profile.
type UpdateProfileRequest struct {
	DisplayName *string   `json:"display_name,omitempty"`
	Nickname    *string   `json:"nickname,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	SiteBgURL   *string   `json:"site_bg_url,omitempty"`
	AuthorBgURL *string   `json:"author_bg_url,omitempty"`
}

// ValidateAndNormalize checks every present field against the
// configured limits and returns a normalized copy (strings trimmed,
// tag entries filtered and truncated). Pure: validating its own
// output returns the same output.
func (r UpdateProfileRequest) ValidateAndNormalize(limits config.ContentConfig) (UpdateProfileRequest, error) {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName,
			validation.RuneLength(0, limits.MaxNameLength).Error("display name too long"),
		),
		validation.Field(&r.Nickname,
			validation.RuneLength(0, limits.MaxNameLength).Error("nickname too long"),
		),
		validation.Field(&r.Bio,
			validation.RuneLength(0, limits.MaxBioLength).Error("bio too long"),
		),
		validation.Field(&r.PhotoURL, validate.HTTPURL),
		validation.Field(&r.SiteBgURL, validate.HTTPURL),
		validation.Field(&r.AuthorBgURL, validate.HTTPURL),
	)
	if err != nil {
		return UpdateProfileRequest{}, err
	}

	out := r
	out.DisplayName = trimmed(r.DisplayName)
	out.Nickname = trimmed(r.Nickname)
	out.Bio = trimmed(r.Bio)
	out.PhotoURL = trimmed(r.PhotoURL)
	out.SiteBgURL = trimmed(r.SiteBgURL)
	out.AuthorBgURL = trimmed(r.AuthorBgURL)

	if r.Tags != nil {
		tags, err := validate.Tags(*r.Tags, limits.MaxTagCount, limits.MaxTagLength)
		if err != nil {
			return UpdateProfileRequest{}, err
		}
		out.Tags = &tags
	}

	return out, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
