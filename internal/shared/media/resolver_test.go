package media

import (
	"testing"

	"monument-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEffectivePriority(t *testing.T) {
	r := NewResolver(config.MediaConfig{APIBaseURL: "http://api.example.com"})

	tests := []struct {
		name string
		ref  Ref
		want *string
	}{
		{
			"asset url wins over everything",
			Ref{AssetURL: strPtr("https://cdn.example.com/x.jpg"), Bucket: strPtr("b"), Path: strPtr("p.jpg"), LegacyURL: strPtr("http://old/x.jpg")},
			strPtr("https://cdn.example.com/x.jpg"),
		},
		{
			"bucket and path compose",
			Ref{Bucket: strPtr("monument"), Path: strPtr("products/vazo.jpg"), LegacyURL: strPtr("http://old/x.jpg")},
			strPtr("http://api.example.com/storage/monument/products/vazo.jpg"),
		},
		{
			"legacy url is last resort",
			Ref{LegacyURL: strPtr("http://old/x.jpg")},
			strPtr("http://old/x.jpg"),
		},
		{
			"nothing resolves to nil",
			Ref{},
			nil,
		},
		{
			"empty strings count as absent",
			Ref{AssetURL: strPtr(""), Bucket: strPtr(""), Path: strPtr("p.jpg"), LegacyURL: strPtr("")},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Effective(tt.ref)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestComposePrefersCDN(t *testing.T) {
	r := NewResolver(config.MediaConfig{
		CDNBaseURL: "https://cdn.example.com/",
		APIBaseURL: "http://api.example.com",
	})

	assert.Equal(t, "https://cdn.example.com/storage/monument/a/b.jpg",
		r.Compose("monument", "a/b.jpg"))
}

func TestComposeEscapesSegments(t *testing.T) {
	r := NewResolver(config.MediaConfig{APIBaseURL: "http://api.example.com"})

	got := r.Compose("my bucket", "klasör/taş resmi.jpg")
	assert.Equal(t, "http://api.example.com/storage/my%20bucket/klas%C3%B6r/ta%C5%9F%20resmi.jpg", got)
}
