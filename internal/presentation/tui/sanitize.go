package tui

import (
	"strings"
	"unicode"
)

// Sanitize strips control characters such as ESC and NUL from text
// headed for a terminal, keeping newlines, tabs and carriage returns.
// Document text is untrusted and would otherwise reach the TTY unescaped.
func Sanitize(s string) string {
	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range s {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}
