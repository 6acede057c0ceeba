package campaign

import (
	"time"

	"monument-backend/internal/shared/media"

	"github.com/google/uuid"
)

// Campaign is a time-boxed promotion. StartsAt and ExpiresAt are both
// optional; a nil bound means the window is open on that side.
type Campaign struct {
	ID             uuid.UUID
	Title          string
	Slug           string
	Description    *string
	ImageURL       *string
	StorageAssetID *uuid.UUID
	StartsAt       *time.Time
	ExpiresAt      *time.Time
	DisplayOrder   int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	AssetURL    *string
	AssetBucket *string
	AssetPath   *string
}

// running reports whether the campaign window contains now.
func (cp *Campaign) running(now time.Time) bool {
	if cp.StartsAt != nil && now.Before(*cp.StartsAt) {
		return false
	}
	if cp.ExpiresAt != nil && !now.Before(*cp.ExpiresAt) {
		return false
	}
	return true
}

func (cp *Campaign) effectiveImage(r *media.Resolver) *string {
	return r.Effective(media.Ref{
		LegacyURL: cp.ImageURL,
		AssetURL:  cp.AssetURL,
		Bucket:    cp.AssetBucket,
		Path:      cp.AssetPath,
	})
}
