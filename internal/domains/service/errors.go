package service

import "errors"

var (
	ErrNotFound      = errors.New("service not found")
	ErrDuplicateSlug = errors.New("service slug already exists")
	ErrAssetNotFound = errors.New("storage asset not found")
)
