package campaign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunning(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		cp   Campaign
		want bool
	}{
		{"open window", Campaign{}, true},
		{"started no end", Campaign{StartsAt: &past}, true},
		{"not started yet", Campaign{StartsAt: &future}, false},
		{"already expired", Campaign{ExpiresAt: &past}, false},
		{"inside window", Campaign{StartsAt: &past, ExpiresAt: &future}, true},
		{"expiry boundary is exclusive", Campaign{ExpiresAt: &now}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cp.running(now))
		})
	}
}
