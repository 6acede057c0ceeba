package asset

import "errors"

var (
	ErrNotFound = errors.New("asset not found")
	// ErrInUse means an entity still references the asset row.
	ErrInUse = errors.New("asset is referenced by another record")
)
