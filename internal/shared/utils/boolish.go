package utils

import (
	"errors"
	"fmt"
	"strings"
)

// The legacy admin UI sends boolean filters as any of 0/1, "true"/"false"
// or an actual boolean. Everything funnels through here at the validation
// boundary; the rest of the system only ever sees real booleans.

var ErrNotBoolish = errors.New("value is not a boolean")

// ParseBoolish coerces the accepted boolean spellings into a bool.
func ParseBoolish(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrNotBoolish, s)
	}
}

// IsBoolish is the ozzo rule form: empty string passes (filter absent).
func IsBoolish(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := ParseBoolish(s); err != nil {
		return errors.New("must be one of 0, 1, true, false")
	}
	return nil
}

// ParseBoolishPtr treats the empty string as "filter not supplied".
func ParseBoolishPtr(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	v, err := ParseBoolish(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
