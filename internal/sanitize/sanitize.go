// Package sanitize cleans free-text input before it is persisted or exported.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// Text strips all HTML tags and attributes from user-supplied text.
func Text(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// ForCSV prefixes a single quote when the value would be interpreted as a
// formula by spreadsheet software.
func ForCSV(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}

	switch trimmed[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}

	return s
}
