package forms

import "strings"

// DefaultVariant is used for missing or unknown variant values.
const DefaultVariant = "primary"

// Variants is the closed set of colour variants offered by variant fields.
var Variants = []string{"primary", "secondary", "success", "warning", "danger", "info"}

// IsVariant reports whether value names a known variant, ignoring case.
func IsVariant(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, v := range Variants {
		if v == value {
			return true
		}
	}
	return false
}

// ValidateVariant coerces value into a known variant. Anything unrecognised,
// including non-strings and nil, becomes DefaultVariant.
func ValidateVariant(value interface{}) string {
	s, ok := value.(string)
	if !ok || !IsVariant(s) {
		return DefaultVariant
	}
	return strings.ToLower(strings.TrimSpace(s))
}
