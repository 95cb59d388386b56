// Package sanitize normalizes user-supplied display names before storage.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	digits         = regexp.MustCompile(`[0-9]`)
	nonWord        = regexp.MustCompile(`[^\p{L}\p{N}_ ]`)
)

// Name collapses whitespace runs to single spaces, strips digits and
// punctuation, and lowercases the result.
func Name(s string) string {
	out := whitespaceRuns.ReplaceAllString(strings.TrimSpace(s), " ")
	out = digits.ReplaceAllString(out, "")
	out = nonWord.ReplaceAllString(strings.ToLower(out), "")
	return out
}
