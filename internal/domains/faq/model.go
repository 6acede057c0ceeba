package faq

import "time"

// FAQ is a question/answer pair shown on the public site, manually
// ordered by the admin panel.
type FAQ struct {
	ID           int64
	Question     string
	Slug         string
	Answer       string
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
