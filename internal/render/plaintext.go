package render

import (
	"strings"

	"github.com/collecty/richtext/pkg/domain"
)

// PlainText extracts the unescaped text of a document. Paragraphs, headings
// and list items end with a newline; marks are dropped. Malformed subtrees
// contribute nothing, matching Render.
func PlainText(in domain.Input) string {
	var b strings.Builder
	switch v := in.(type) {
	case domain.Node:
		plain(&b, &v, 0)
	case *domain.Node:
		if v != nil {
			plain(&b, v, 0)
		}
	case domain.Nodes:
		for i := range v {
			plain(&b, &v[i], 0)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func plain(b *strings.Builder, n *domain.Node, depth int) {
	if n.Malformed || depth >= DefaultMaxDepth {
		return
	}
	if n.IsText() {
		b.WriteString(n.Text)
		return
	}
	for i := range n.Content {
		plain(b, &n.Content[i], depth+1)
	}
	switch n.Type {
	case domain.NodeParagraph, domain.NodeHeading, domain.NodeListItem:
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
	}
}
