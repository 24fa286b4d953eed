package service

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// sanitizeString collapses whitespace and trims the result.
func sanitizeString(value string) string {
	value = whitespaceRegex.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}
