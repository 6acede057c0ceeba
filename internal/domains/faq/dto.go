package faq

import (
	"time"

	"monument-backend/internal/shared/listing"
	"monument-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var sortable = listing.Sortable{
	"question":      "question",
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
	Question     string `json:"question"`
	Slug         string `json:"slug"`
	Answer       string `json:"answer"`
	IsActive     *bool  `json:"is_active"`
	DisplayOrder *int   `json:"display_order"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Question, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Slug, validation.Length(0, 255)),
		validation.Field(&r.Answer, validation.Required, validation.Length(1, 5000)),
	)
}

type UpdateRequest struct {
	Question     *string `json:"question"`
	Slug         *string `json:"slug"`
	Answer       *string `json:"answer"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Question, validation.Length(1, 500)),
		validation.Field(&r.Slug, validation.Length(1, 255)),
		validation.Field(&r.Answer, validation.Length(1, 5000)),
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

type PublicItem struct {
	ID           int64  `json:"id"`
	Question     string `json:"question"`
	Slug         string `json:"slug"`
	Answer       string `json:"answer"`
	DisplayOrder int    `json:"display_order"`
}

type AdminItem struct {
	ID           int64     `json:"id"`
	Question     string    `json:"question"`
	Slug         string    `json:"slug"`
	Answer       string    `json:"answer"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toPublic(f *FAQ) PublicItem {
	return PublicItem{
		ID:           f.ID,
		Question:     f.Question,
		Slug:         f.Slug,
		Answer:       f.Answer,
		DisplayOrder: f.DisplayOrder,
	}
}

func toAdmin(f *FAQ) AdminItem {
	return AdminItem{
		ID:           f.ID,
		Question:     f.Question,
		Slug:         f.Slug,
		Answer:       f.Answer,
		DisplayOrder: f.DisplayOrder,
		IsActive:     f.IsActive,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}
