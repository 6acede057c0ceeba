package page

import (
	"time"

	"github.com/google/uuid"
)

// Page is a CMS content page (about, contact, privacy and the like)
// addressed by slug on the public site.
type Page struct {
	ID              uuid.UUID
	Title           string
	Slug            string
	Content         *string
	MetaTitle       *string
	MetaDescription *string
	DisplayOrder    int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
