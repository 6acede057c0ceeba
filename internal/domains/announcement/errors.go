package announcement

import "errors"

var (
	ErrNotFound      = errors.New("announcement not found")
	ErrDuplicateSlug = errors.New("announcement slug already exists")
)
