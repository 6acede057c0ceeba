package announcement

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a site notice. Public visibility is the conjunction of
// is_active, is_published and a not-yet-expired window.
type Announcement struct {
	ID           uuid.UUID
	Title        string
	Slug         string
	Body         string
	IsActive     bool
	IsPublished  bool
	PublishedAt  *time.Time
	ExpiresAt    *time.Time
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// visible reports whether the row may appear on the public site.
func (a *Announcement) visible(now time.Time) bool {
	if !a.IsActive || !a.IsPublished {
		return false
	}
	if a.ExpiresAt != nil && !a.ExpiresAt.After(now) {
		return false
	}
	return true
}
