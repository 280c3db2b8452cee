// Package escape converts raw text into HTML-safe text.
package escape

import "strings"

// The replacer scans the input once, so entities introduced for one
// character are never re-escaped by a later rule.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// HTML replaces &, <, >, " and ' with their entities. Every other
// character is left untouched.
func HTML(s string) string {
	return htmlReplacer.Replace(s)
}
