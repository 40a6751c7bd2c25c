package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans rich-text content (post bodies, comments) to prevent stored XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
