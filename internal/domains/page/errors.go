package page

import "errors"

var (
	ErrNotFound      = errors.New("page not found")
	ErrDuplicateSlug = errors.New("page slug already exists")
)
