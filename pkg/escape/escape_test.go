package escape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Hello, world", "Hello, world"},
		{"ampersand", "a&b", "a&amp;b"},
		{"ampersand first", "&<", "&amp;&lt;"},
		{"existing entity", "&amp;", "&amp;amp;"},
		{"tags", "<script>", "&lt;script&gt;"},
		{"quotes", `"it's"`, "&quot;it&#39;s&quot;"},
		{"unicode untouched", "café ✓ — ok", "café ✓ — ok"},
		{"attribute breakout", `javascript:alert("x")`, "javascript:alert(&quot;x&quot;)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTML(tt.in))
		})
	}
}
