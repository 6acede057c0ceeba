package asset

import (
	"regexp"
	"time"

	"monument-backend/internal/shared/listing"
	"monument-backend/internal/shared/media"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var sortable = listing.Sortable{
	"path":       "path",
	"bucket":     "bucket",
	"size_bytes": "size_bytes",
	"created_at": "created_at",
}

// pathPattern rejects traversal and absolute keys; segments are plain
// object-key characters.
var pathPattern = regexp.MustCompile(`^[^/\s][^\s]*$`)

type ListQuery struct {
	listing.Query
	Bucket string `form:"bucket"`
}

func (q ListQuery) Validate() error {
	if err := q.Query.Validate(sortable); err != nil {
		return err
	}
	return validation.ValidateStruct(&q,
		validation.Field(&q.Bucket, validation.Length(0, 100)),
	)
}

type Filter struct {
	Search string
	Bucket string
	Limit  int
	Offset int
	Sort   string
	Order  string
}

func (q ListQuery) toFilter() Filter {
	limit, offset := q.Page()
	return Filter{
		Search: q.Q,
		Bucket: q.Bucket,
		Limit:  limit,
		Offset: offset,
		Sort:   q.Sort,
		Order:  q.Order,
	}
}

type SignPutRequest struct {
	Path        string  `json:"path"`
	Bucket      string  `json:"bucket"`
	ContentType *string `json:"content_type"`
}

func (r SignPutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Required, validation.Length(1, 1024), validation.Match(pathPattern)),
		validation.Field(&r.Bucket, validation.Length(0, 100)),
	)
}

type SignMultipartRequest struct {
	Path        string  `json:"path"`
	Bucket      string  `json:"bucket"`
	ContentType *string `json:"content_type"`
	Parts       int     `json:"parts"`
}

func (r SignMultipartRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Required, validation.Length(1, 1024), validation.Match(pathPattern)),
		validation.Field(&r.Bucket, validation.Length(0, 100)),
		validation.Field(&r.Parts, validation.Required, validation.Min(1), validation.Max(10000)),
	)
}

type CompleteMultipartRequest struct {
	Path        string   `json:"path"`
	Bucket      string   `json:"bucket"`
	UploadID    string   `json:"upload_id"`
	ETags       []string `json:"etags"`
	ContentType *string  `json:"content_type"`
	SizeBytes   int64    `json:"size_bytes"`
}

func (r CompleteMultipartRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Required, validation.Length(1, 1024), validation.Match(pathPattern)),
		validation.Field(&r.Bucket, validation.Length(0, 100)),
		validation.Field(&r.UploadID, validation.Required),
		validation.Field(&r.ETags, validation.Required, validation.Length(1, 0)),
	)
}

type AdminItem struct {
	ID          uuid.UUID `json:"id"`
	Bucket      string    `json:"bucket"`
	Path        string    `json:"path"`
	URL         *string   `json:"url"`
	ContentType *string   `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

type SignPutResponse struct {
	Asset     AdminItem `json:"asset"`
	UploadURL string    `json:"upload_url"`
}

type SignMultipartResponse struct {
	UploadID string   `json:"upload_id"`
	PartURLs []string `json:"part_urls"`
}

func toAdmin(a *Asset, r *media.Resolver) AdminItem {
	return AdminItem{
		ID:          a.ID,
		Bucket:      a.Bucket,
		Path:        a.Path,
		URL:         a.URL,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
		Image:       a.effectiveURL(r),
		CreatedAt:   a.CreatedAt,
	}
}
