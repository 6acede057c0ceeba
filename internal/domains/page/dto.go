package page

import (
	"time"

	"monument-backend/internal/shared/listing"
	"monument-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var sortable = listing.Sortable{
	"title":         "title",
	"slug":          "slug",
	"display_order": "display_order",
	"created_at":    "created_at",
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
	Title           string  `json:"title"`
	Slug            string  `json:"slug"`
	Content         *string `json:"content"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	IsActive        *bool   `json:"is_active"`
	DisplayOrder    *int    `json:"display_order"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(0, 255)),
		validation.Field(&r.MetaTitle, validation.Length(0, 255)),
		validation.Field(&r.MetaDescription, validation.Length(0, 500)),
	)
}

type UpdateRequest struct {
	Title           *string `json:"title"`
	Slug            *string `json:"slug"`
	Content         *string `json:"content"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	IsActive        *bool   `json:"is_active"`
	DisplayOrder    *int    `json:"display_order"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(1, 255)),
		validation.Field(&r.MetaTitle, validation.Length(0, 255)),
		validation.Field(&r.MetaDescription, validation.Length(0, 500)),
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

type PublicItem struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         *string   `json:"content"`
	MetaTitle       *string   `json:"meta_title"`
	MetaDescription *string   `json:"meta_description"`
	DisplayOrder    int       `json:"display_order"`
}

type AdminItem struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         *string   `json:"content"`
	MetaTitle       *string   `json:"meta_title"`
	MetaDescription *string   `json:"meta_description"`
	DisplayOrder    int       `json:"display_order"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toPublic(p *Page) PublicItem {
	return PublicItem{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		DisplayOrder:    p.DisplayOrder,
	}
}

func toAdmin(p *Page) AdminItem {
	return AdminItem{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		DisplayOrder:    p.DisplayOrder,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
