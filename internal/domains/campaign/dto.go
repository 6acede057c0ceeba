package campaign

import (
	"time"

	"monument-backend/internal/shared/listing"
	"monument-backend/internal/shared/media"
	"monument-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var sortable = listing.Sortable{
	"title":         "cp.title",
	"starts_at":     "cp.starts_at",
	"expires_at":    "cp.expires_at",
	"display_order": "cp.display_order",
	"created_at":    "cp.created_at",
}

type ListQuery struct {
	listing.Query
	IsActive    string `form:"is_active"`
	OnlyRunning string `form:"only_running"`
}

func (q ListQuery) Validate() error {
	if err := q.Query.Validate(sortable); err != nil {
		return err
	}
	return validation.ValidateStruct(&q,
		validation.Field(&q.IsActive, validation.By(utils.IsBoolish)),
		validation.Field(&q.OnlyRunning, validation.By(utils.IsBoolish)),
	)
}

type Filter struct {
	Search   string
	IsActive *bool
	// OnlyRunning narrows to campaigns whose window contains now.
	// Always true for public lists.
	OnlyRunning bool
	Limit       int
	Offset      int
	Sort        string
	Order       string
}

func (q ListQuery) toFilter() (Filter, error) {
	isActive, err := utils.ParseBoolishPtr(q.IsActive)
	if err != nil {
		return Filter{}, err
	}
	onlyRunning, err := utils.ParseBoolishPtr(q.OnlyRunning)
	if err != nil {
		return Filter{}, err
	}

	limit, offset := q.Page()
	return Filter{
		Search:      q.Q,
		IsActive:    isActive,
		OnlyRunning: onlyRunning != nil && *onlyRunning,
		Limit:       limit,
		Offset:      offset,
		Sort:        q.Sort,
		Order:       q.Order,
	}, nil
}

type CreateRequest struct {
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  *string    `json:"description"`
	ImageURL     *string    `json:"image_url"`
	StartsAt     *time.Time `json:"starts_at"`
	ExpiresAt    *time.Time `json:"expires_at"`
	IsActive     *bool      `json:"is_active"`
	DisplayOrder *int       `json:"display_order"`
}

func (r CreateRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(0, 255)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	); err != nil {
		return err
	}
	return validateWindow(r.StartsAt, r.ExpiresAt)
}

type UpdateRequest struct {
	Title        *string    `json:"title"`
	Slug         *string    `json:"slug"`
	Description  *string    `json:"description"`
	ImageURL     *string    `json:"image_url"`
	StartsAt     *time.Time `json:"starts_at"`
	ExpiresAt    *time.Time `json:"expires_at"`
	IsActive     *bool      `json:"is_active"`
	DisplayOrder *int       `json:"display_order"`
}

func (r UpdateRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	); err != nil {
		return err
	}
	return validateWindow(r.StartsAt, r.ExpiresAt)
}

func validateWindow(startsAt, expiresAt *time.Time) error {
	if startsAt != nil && expiresAt != nil && !expiresAt.After(*startsAt) {
		return validation.Errors{"expires_at": validation.NewError(
			"validation_window", "must be after starts_at")}
	}
	return nil
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
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  *string    `json:"description"`
	Image        *string    `json:"image"`
	StartsAt     *time.Time `json:"starts_at"`
	ExpiresAt    *time.Time `json:"expires_at"`
	DisplayOrder int        `json:"display_order"`
}

type AdminItem struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Description    *string    `json:"description"`
	ImageURL       *string    `json:"image_url"`
	StorageAssetID *uuid.UUID `json:"storage_asset_id"`
	Image          *string    `json:"image"`
	StartsAt       *time.Time `json:"starts_at"`
	ExpiresAt      *time.Time `json:"expires_at"`
	DisplayOrder   int        `json:"display_order"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toPublic(cp *Campaign, r *media.Resolver) PublicItem {
	return PublicItem{
		ID:           cp.ID,
		Title:        cp.Title,
		Slug:         cp.Slug,
		Description:  cp.Description,
		Image:        cp.effectiveImage(r),
		StartsAt:     cp.StartsAt,
		ExpiresAt:    cp.ExpiresAt,
		DisplayOrder: cp.DisplayOrder,
	}
}

func toAdmin(cp *Campaign, r *media.Resolver) AdminItem {
	return AdminItem{
		ID:             cp.ID,
		Title:          cp.Title,
		Slug:           cp.Slug,
		Description:    cp.Description,
		ImageURL:       cp.ImageURL,
		StorageAssetID: cp.StorageAssetID,
		Image:          cp.effectiveImage(r),
		StartsAt:       cp.StartsAt,
		ExpiresAt:      cp.ExpiresAt,
		DisplayOrder:   cp.DisplayOrder,
		IsActive:       cp.IsActive,
		CreatedAt:      cp.CreatedAt,
		UpdatedAt:      cp.UpdatedAt,
	}
}
