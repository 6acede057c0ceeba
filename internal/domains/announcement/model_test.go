package announcement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVisible(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		a    Announcement
		want bool
	}{
		{"active published no expiry", Announcement{IsActive: true, IsPublished: true}, true},
		{"inactive hidden", Announcement{IsActive: false, IsPublished: true}, false},
		{"unpublished hidden", Announcement{IsActive: true, IsPublished: false}, false},
		{"expired hidden", Announcement{IsActive: true, IsPublished: true, ExpiresAt: &past}, false},
		{"future expiry visible", Announcement{IsActive: true, IsPublished: true, ExpiresAt: &future}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.visible(now))
		})
	}
}
