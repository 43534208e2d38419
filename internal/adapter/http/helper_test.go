package http

import "strings"

// hasFieldError reports whether details carry a message for field containing substr.
func hasFieldError(details []FieldError, field, substr string) bool {
	for _, d := range details {
		if d.Field == field && strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}
