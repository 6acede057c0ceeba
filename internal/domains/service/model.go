package service

import (
	"time"

	"monument-backend/internal/shared/media"

	"github.com/google/uuid"
)

// Service is an offered service (restoration, lettering, cleaning and
// the like) shown on the public site.
type Service struct {
	ID             int64
	Name           string
	Slug           string
	Description    *string
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

func (s *Service) effectiveImage(r *media.Resolver) *string {
	return r.Effective(media.Ref{
		LegacyURL: s.ImageURL,
		AssetURL:  s.AssetURL,
		Bucket:    s.AssetBucket,
		Path:      s.AssetPath,
	})
}
