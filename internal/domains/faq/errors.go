package faq

import "errors"

var (
	ErrNotFound      = errors.New("faq not found")
	ErrDuplicateSlug = errors.New("faq slug already exists")
)
