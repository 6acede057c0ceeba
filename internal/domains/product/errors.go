package product

import "errors"

var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicateSlug = errors.New("product slug already exists")
	ErrAssetNotFound = errors.New("storage asset not found")
)
