package product

import (
	"time"

	"monument-backend/internal/shared/listing"
	"monument-backend/internal/shared/media"
	"monument-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var sortable = listing.Sortable{
	"name":          "p.name",
	"category":      "p.category",
	"display_order": "p.display_order",
	"created_at":    "p.created_at",
}

type ListQuery struct {
	listing.Query
	Category string `form:"category"`
	Material string `form:"material"`
	IsActive string `form:"is_active"`
}

func (q ListQuery) Validate() error {
	if err := q.Query.Validate(sortable); err != nil {
		return err
	}
	return validation.ValidateStruct(&q,
		validation.Field(&q.Category, validation.Length(0, 100)),
		validation.Field(&q.Material, validation.Length(0, 100)),
		validation.Field(&q.IsActive, validation.By(utils.IsBoolish)),
	)
}

type Filter struct {
	Search   string
	Category string
	Material string
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
		Material: q.Material,
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
	Material     *string `json:"material"`
	Price        *string `json:"price"`
	ImageURL     *string `json:"image_url"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(0, 255)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}

type UpdateRequest struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	Material     *string `json:"material"`
	Price        *string `json:"price"`
	ImageURL     *string `json:"image_url"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(1, 255)),
		validation.Field(&r.Category, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}

type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids"`
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
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description"`
	Category     string    `json:"category"`
	Material     *string   `json:"material"`
	Price        *string   `json:"price"`
	Image        *string   `json:"image"`
	DisplayOrder int       `json:"display_order"`
}

type AdminItem struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Slug           string     `json:"slug"`
	Description    *string    `json:"description"`
	Category       string     `json:"category"`
	Material       *string    `json:"material"`
	Price          *string    `json:"price"`
	ImageURL       *string    `json:"image_url"`
	StorageAssetID *uuid.UUID `json:"storage_asset_id"`
	Image          *string    `json:"image"`
	DisplayOrder   int        `json:"display_order"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toPublic(p *Product, r *media.Resolver) PublicItem {
	return PublicItem{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Category:     p.Category,
		Material:     p.Material,
		Price:        p.Price,
		Image:        p.effectiveImage(r),
		DisplayOrder: p.DisplayOrder,
	}
}

func toAdmin(p *Product, r *media.Resolver) AdminItem {
	return AdminItem{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Category:       p.Category,
		Material:       p.Material,
		Price:          p.Price,
		ImageURL:       p.ImageURL,
		StorageAssetID: p.StorageAssetID,
		Image:          p.effectiveImage(r),
		DisplayOrder:   p.DisplayOrder,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
