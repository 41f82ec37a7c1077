package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize collapses every run of whitespace into one space and trims both ends.
func TrimAndNormalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeName cleans a restaurant name. Control characters other than whitespace are dropped.
func NormalizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	return TrimAndNormalize(name)
}

// NormalizeUserID trims surrounding whitespace and lowercases the id, so "Ali " and "ali" are one customer.
func NormalizeUserID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
