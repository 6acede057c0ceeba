package service

import (
	"time"

	"monument-backend/internal/shared/listing"
	"monument-backend/internal/shared/media"
	"monument-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var sortable = listing.Sortable{
	"name":          "sv.name",
	"display_order": "sv.display_order",
	"created_at":    "sv.created_at",
}

type ListQuery struct {
	listing.Query
	IsActive string `form:"is_active"`
}

func (q ListQuery) Validate() error {
	if err := q.Query.Validate(sortable); err != nil {
		return err
	}
	return validation.ValidateStruct(&q,
		validation.Field(&q.IsActive, validation.By(utils.IsBoolish)),
	)
}

type Filter struct {
	Search   string
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
	ImageURL     *string `json:"image_url"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(0, 255)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}

type UpdateRequest struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
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

type SetImageRequest struct {
	StorageAssetID *uuid.UUID `json:"storage_asset_id"`
}

type PublicItem struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Description  *string `json:"description"`
	Image        *string `json:"image"`
	DisplayOrder int     `json:"display_order"`
}

type AdminItem struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Slug           string     `json:"slug"`
	Description    *string    `json:"description"`
	ImageURL       *string    `json:"image_url"`
	StorageAssetID *uuid.UUID `json:"storage_asset_id"`
	Image          *string    `json:"image"`
	DisplayOrder   int        `json:"display_order"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toPublic(s *Service, r *media.Resolver) PublicItem {
	return PublicItem{
		ID:           s.ID,
		Name:         s.Name,
		Slug:         s.Slug,
		Description:  s.Description,
		Image:        s.effectiveImage(r),
		DisplayOrder: s.DisplayOrder,
	}
}

func toAdmin(s *Service, r *media.Resolver) AdminItem {
	return AdminItem{
		ID:             s.ID,
		Name:           s.Name,
		Slug:           s.Slug,
		Description:    s.Description,
		ImageURL:       s.ImageURL,
		StorageAssetID: s.StorageAssetID,
		Image:          s.effectiveImage(r),
		DisplayOrder:   s.DisplayOrder,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
