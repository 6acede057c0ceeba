// Package media computes the single public-facing URL for an entity that
// may carry either a legacy raw URL or a managed storage-asset reference.
package media

import (
	"net/url"
	"strings"

	"monument-backend/internal/config"
)

// Ref is what a repository joins out of an entity row and its optional
// storage asset.
type Ref struct {
	// LegacyURL is the plain image_url column predating managed assets.
	LegacyURL *string
	// AssetURL is the asset's explicit provider URL, when it has one.
	AssetURL *string
	// Bucket and Path locate the asset when no provider URL is stored.
	Bucket *string
	Path   *string
}

// Resolver composes asset URLs from the configured bases. CDN base wins
// over the API base.
type Resolver struct {
	cdnBase string
	apiBase string
}

func NewResolver(cfg config.MediaConfig) *Resolver {
	return &Resolver{cdnBase: cfg.CDNBaseURL, apiBase: cfg.APIBaseURL}
}

// Effective resolves the one URL a client should display. Priority:
// asset provider URL, then composed bucket+path, then the legacy raw
// URL. nil (never "") when nothing resolves.
func (r *Resolver) Effective(ref Ref) *string {
	if has(ref.AssetURL) {
		return ref.AssetURL
	}
	if has(ref.Bucket) && has(ref.Path) {
		composed := r.Compose(*ref.Bucket, *ref.Path)
		return &composed
	}
	if has(ref.LegacyURL) {
		return ref.LegacyURL
	}
	return nil
}

// Compose joins the base with the URL-encoded bucket and each encoded
// path segment, preserving separators.
func (r *Resolver) Compose(bucket, path string) string {
	base := r.cdnBase
	if base == "" {
		base = r.apiBase
	}
	base = strings.TrimRight(base, "/")

	segments := []string{url.PathEscape(bucket)}
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, url.PathEscape(seg))
		}
	}

	return base + "/storage/" + strings.Join(segments, "/")
}

func has(s *string) bool {
	return s != nil && *s != ""
}
