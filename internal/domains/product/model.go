package product

import (
	"time"

	"monument-backend/internal/shared/media"

	"github.com/google/uuid"
)

// Product is a monument model in the catalog (single plot, double plot,
// baby memorial and so on), grouped by category and material.
type Product struct {
	ID             uuid.UUID
	Name           string
	Slug           string
	Description    *string
	Category       string
	Material       *string
	Price          *string
	ImageURL       *string
	StorageAssetID *uuid.UUID
	DisplayOrder   int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	AssetURL    *string
	AssetBucket *string
	AssetPath   *string
}

func (p *Product) effectiveImage(r *media.Resolver) *string {
	return r.Effective(media.Ref{
		LegacyURL: p.ImageURL,
		AssetURL:  p.AssetURL,
		Bucket:    p.AssetBucket,
		Path:      p.AssetPath,
	})
}
