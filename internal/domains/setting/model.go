package setting

import "time"

// Setting is a site configuration entry keyed by name (phone number,
// address, social links and so on). Only public entries are exposed on
// the unauthenticated endpoint.
type Setting struct {
	Key       string
	Value     string
	IsPublic  bool
	UpdatedAt time.Time
}
