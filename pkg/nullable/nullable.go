// Package nullable normalizes optional request fields before they reach the database.
package nullable

import "strings"

// String trims the value and turns an empty result into nil.
func String(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Value dereferences v, returning "" for nil.
func Value(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// Column unwraps p for a column update so nil is written as NULL.
func Column[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
