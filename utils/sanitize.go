package utils

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.StrictPolicy()

// maxSanitizePasses bounds how many layers of entity encoding are peeled.
const maxSanitizePasses = 8

// Sanitize strips all markup from user input and returns plain text.
// Entity-encoded markup is decoded and stripped too, so the result is stable
// under a second Sanitize. Output is escaped again by html/template.
func Sanitize(input string) string {
	out := input
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(sanitizer.Sanitize(out))
		if next == out {
			return out
		}
		out = next
	}
	// Still changing: keep the escaped form, which carries no markup.
	return sanitizer.Sanitize(out)
}
