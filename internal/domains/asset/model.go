package asset

import (
	"time"

	"monument-backend/internal/shared/media"

	"github.com/google/uuid"
)

// Asset is a managed storage object. URL is only set for objects hosted
// outside our own buckets; otherwise the public URL is composed from
// bucket and path.
type Asset struct {
	ID          uuid.UUID
	Bucket      string
	Path        string
	URL         *string
	ContentType *string
	SizeBytes   int64
	CreatedAt   time.Time
}

func (a *Asset) effectiveURL(r *media.Resolver) *string {
	bucket, path := a.Bucket, a.Path
	return r.Effective(media.Ref{
		AssetURL: a.URL,
		Bucket:   &bucket,
		Path:     &path,
	})
}
