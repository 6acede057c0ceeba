package announcement

import (
	"time"

	"monument-backend/internal/shared/listing"
	"monument-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var sortable = listing.Sortable{
	"title":         "title",
	"published_at":  "published_at",
	"display_order": "display_order",
	"created_at":    "created_at",
}

type ListQuery struct {
	listing.Query
	IsActive       string `form:"is_active"`
	IsPublished    string `form:"is_published"`
	IncludeExpired string `form:"include_expired"`
}

func (q ListQuery) Validate() error {
	if err := q.Query.Validate(sortable); err != nil {
		return err
	}
	return validation.ValidateStruct(&q,
		validation.Field(&q.IsActive, validation.By(utils.IsBoolish)),
		validation.Field(&q.IsPublished, validation.By(utils.IsBoolish)),
		validation.Field(&q.IncludeExpired, validation.By(utils.IsBoolish)),
	)
}

type Filter struct {
	Search      string
	IsActive    *bool
	IsPublished *bool
	// OnlyUnexpired adds the expiry-window condition. Always true for
	// public lists; admin opts in with include_expired=false.
	OnlyUnexpired bool
	Limit         int
	Offset        int
	Sort          string
	Order         string
}

func (q ListQuery) toFilter() (Filter, error) {
	isActive, err := utils.ParseBoolishPtr(q.IsActive)
	if err != nil {
		return Filter{}, err
	}
	isPublished, err := utils.ParseBoolishPtr(q.IsPublished)
	if err != nil {
		return Filter{}, err
	}
	includeExpired, err := utils.ParseBoolishPtr(q.IncludeExpired)
	if err != nil {
		return Filter{}, err
	}

	limit, offset := q.Page()
	return Filter{
		Search:        q.Q,
		IsActive:      isActive,
		IsPublished:   isPublished,
		OnlyUnexpired: includeExpired != nil && !*includeExpired,
		Limit:         limit,
		Offset:        offset,
		Sort:          q.Sort,
		Order:         q.Order,
	}, nil
}

type CreateRequest struct {
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Body         string     `json:"body"`
	IsActive     *bool      `json:"is_active"`
	IsPublished  *bool      `json:"is_published"`
	ExpiresAt    *time.Time `json:"expires_at"`
	DisplayOrder *int       `json:"display_order"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(0, 255)),
		validation.Field(&r.Body, validation.Required),
	)
}

type UpdateRequest struct {
	Title        *string    `json:"title"`
	Slug         *string    `json:"slug"`
	Body         *string    `json:"body"`
	IsActive     *bool      `json:"is_active"`
	IsPublished  *bool      `json:"is_published"`
	ExpiresAt    *time.Time `json:"expires_at"`
	DisplayOrder *int       `json:"display_order"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(1, 255)),
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
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Body         string     `json:"body"`
	PublishedAt  *time.Time `json:"published_at"`
	DisplayOrder int        `json:"display_order"`
}

type AdminItem struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Body         string     `json:"body"`
	IsActive     bool       `json:"is_active"`
	IsPublished  bool       `json:"is_published"`
	PublishedAt  *time.Time `json:"published_at"`
	ExpiresAt    *time.Time `json:"expires_at"`
	DisplayOrder int        `json:"display_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toPublic(a *Announcement) PublicItem {
	return PublicItem{
		ID:           a.ID,
		Title:        a.Title,
		Slug:         a.Slug,
		Body:         a.Body,
		PublishedAt:  a.PublishedAt,
		DisplayOrder: a.DisplayOrder,
	}
}

func toAdmin(a *Announcement) AdminItem {
	return AdminItem{
		ID:           a.ID,
		Title:        a.Title,
		Slug:         a.Slug,
		Body:         a.Body,
		IsActive:     a.IsActive,
		IsPublished:  a.IsPublished,
		PublishedAt:  a.PublishedAt,
		ExpiresAt:    a.ExpiresAt,
		DisplayOrder: a.DisplayOrder,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
