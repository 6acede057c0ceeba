package campaign

import "errors"

var (
	ErrNotFound      = errors.New("campaign not found")
	ErrDuplicateSlug = errors.New("campaign slug already exists")
	ErrAssetNotFound = errors.New("storage asset not found")
)
