package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// turkishFold maps Turkish letters to their ASCII base so product and
// category names slugify cleanly ("Mezar Taşı" -> "mezar-tasi").
var turkishFold = map[rune]rune{
	'ç': 'c', 'Ç': 'C',
	'ğ': 'g', 'Ğ': 'G',
	'ı': 'i', 'İ': 'I',
	'ö': 'o', 'Ö': 'O',
	'ş': 's', 'Ş': 'S',
	'ü': 'u', 'Ü': 'U',
	'â': 'a', 'Â': 'A',
	'î': 'i', 'Î': 'I',
	'û': 'u', 'Û': 'U',
}

// GenerateSlug derives a URL-safe slug from a human readable name.
func GenerateSlug(input string) string {
	folded := make([]rune, 0, len(input))
	for _, r := range input {
		if base, ok := turkishFold[r]; ok {
			folded = append(folded, base)
		} else {
			folded = append(folded, r)
		}
	}

	s := strings.ToLower(string(folded))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
