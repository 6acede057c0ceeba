package accessory

import (
	"time"

	"monument-backend/internal/shared/media"

	"github.com/google/uuid"
)

// Accessory is a catalog item sold alongside monuments (vases, lanterns,
// plaques). Rows keep both the legacy image_url column and the newer
// storage-asset reference; the asset wins when present.
type Accessory struct {
	ID             int64
	Name           string
	Slug           string
	Description    *string
	Category       string
	ImageURL       *string
	StorageAssetID *uuid.UUID
	DisplayOrder   int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined from storage_assets when storage_asset_id is set.
	AssetURL    *string
	AssetBucket *string
	AssetPath   *string
}

func (a *Accessory) effectiveImage(r *media.Resolver) *string {
	return r.Effective(media.Ref{
		LegacyURL: a.ImageURL,
		AssetURL:  a.AssetURL,
		Bucket:    a.AssetBucket,
		Path:      a.AssetPath,
	})
}
