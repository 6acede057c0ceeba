package setting

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9_.-]+$`)

type UpsertRequest struct {
	Value    string `json:"value"`
	IsPublic *bool  `json:"is_public"`
}

func (r UpsertRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Value, validation.Length(0, 10000)),
	)
}

func validateKey(key string) error {
	return validation.Validate(key,
		validation.Required,
		validation.Length(1, 100),
		validation.Match(keyPattern),
	)
}

type AdminItem struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	IsPublic  bool      `json:"is_public"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAdmin(s *Setting) AdminItem {
	return AdminItem{
		Key:       s.Key,
		Value:     s.Value,
		IsPublic:  s.IsPublic,
		UpdatedAt: s.UpdatedAt,
	}
}
