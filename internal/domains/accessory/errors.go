package accessory

import "errors"

var (
	ErrNotFound      = errors.New("accessory not found")
	ErrDuplicateSlug = errors.New("accessory slug already exists")
	ErrAssetNotFound = errors.New("storage asset not found")
)
