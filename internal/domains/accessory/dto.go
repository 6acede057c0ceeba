package accessory

import (
	"monument-backend/internal/shared/listing"
	"monument-backend/internal/shared/media"
	"monument-backend/internal/shared/utils"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var sortable = listing.Sortable{
	"name":          "a.name",
	"category":      "a.category",
	"display_order": "a.display_order",
	"created_at":    "a.created_at",
}

// ListQuery is the raw query-string shape. Boolean-ish params stay
// strings until validation coerces them.
type ListQuery struct {
	listing.Query
	Category string `form:"category"`
	IsActive string `form:"is_active"`
}

func (q ListQuery) Validate() error {
	if err := q.Query.Validate(sortable); err != nil {
		return err
	}
	return validation.ValidateStruct(&q,
		validation.Field(&q.Category, validation.Length(0, 100)),
		validation.Field(&q.IsActive, validation.By(utils.IsBoolish)),
	)
}

// Filter is what validation hands the repository: real types only.
type Filter struct {
	Search   string
	Category string
	IsActive *bool
	Limit    int
	Offset   int
	Sort     string
	Order    string
}

func (q ListQuery) toFilter() (Filter, error) {
	isActive, err := utils.ParseBoolishPtr(q.IsActive)
	if err != nil {
		return Filter{}, err
	}

	limit, offset := q.Page()
	return Filter{
		Search:   q.Q,
		Category: q.Category,
		IsActive: isActive,
		Limit:    limit,
		Offset:   offset,
		Sort:     q.Sort,
		Order:    q.Order,
	}, nil
}

type CreateRequest struct {
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Description  *string `json:"description"`
	Category     string  `json:"category"`
	ImageURL     *string `json:"image_url"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(0, 255)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// UpdateRequest is a partial patch: nil means "leave unchanged".
type UpdateRequest struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	ImageURL     *string `json:"image_url"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(1, 255)),
		validation.Field(&r.Category, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

type ReorderRequest struct {
	IDs []int64 `json:"ids"`
}

func (r ReorderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IDs, validation.Required, validation.Length(1, 0)),
	)
}

// SetImageRequest attaches or (with a null id) detaches a storage asset.
type SetImageRequest struct {
	StorageAssetID *uuid.UUID `json:"storage_asset_id"`
}

// PublicItem exposes only resolved values: image, never the raw
// image_url / storage_asset_id pair.
type PublicItem struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Description  *string `json:"description"`
	Category     string  `json:"category"`
	Image        *string `json:"image"`
	DisplayOrder int     `json:"display_order"`
}

// AdminItem shows raw fields and the derived image side by side so the
// admin UI can display provenance.
type AdminItem struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Slug           string     `json:"slug"`
	Description    *string    `json:"description"`
	Category       string     `json:"category"`
	ImageURL       *string    `json:"image_url"`
	StorageAssetID *uuid.UUID `json:"storage_asset_id"`
	Image          *string    `json:"image"`
	DisplayOrder   int        `json:"display_order"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toPublic(a *Accessory, r *media.Resolver) PublicItem {
	return PublicItem{
		ID:           a.ID,
		Name:         a.Name,
		Slug:         a.Slug,
		Description:  a.Description,
		Category:     a.Category,
		Image:        a.effectiveImage(r),
		DisplayOrder: a.DisplayOrder,
	}
}

func toAdmin(a *Accessory, r *media.Resolver) AdminItem {
	return AdminItem{
		ID:             a.ID,
		Name:           a.Name,
		Slug:           a.Slug,
		Description:    a.Description,
		Category:       a.Category,
		ImageURL:       a.ImageURL,
		StorageAssetID: a.StorageAssetID,
		Image:          a.effectiveImage(r),
		DisplayOrder:   a.DisplayOrder,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
