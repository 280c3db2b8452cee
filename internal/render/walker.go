package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/escape"
)

const (
	paragraphOpen   = `<p style="margin-bottom: 0.75rem; line-height: 1.5;">`
	bulletListOpen  = `<ul style="list-style-type: disc; padding-left: 1.5rem; margin-bottom: 0.75rem;">`
	orderedListOpen = `<ol style="list-style-type: decimal; padding-left: 1.5rem; margin-bottom: 0.75rem;">`
	listItemOpen    = `<li style="margin-bottom: 0.25rem;">`
	linkStyle       = `color: inherit; text-decoration: underline;`
)

// walker holds the state of a single render pass.
type walker struct {
	engine  *Engine
	b       strings.Builder
	issues  []domain.Issue
	visited int
}

func (w *walker) report(path, nodeType string, kind domain.IssueKind, format string, args ...any) {
	w.issues = append(w.issues, domain.Issue{
		Path:     path,
		NodeType: nodeType,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (w *walker) sequence(nodes []domain.Node, path string, depth int) string {
	if len(nodes) == 0 {
		return ""
	}
	var b strings.Builder
	for i := range nodes {
		b.WriteString(w.node(&nodes[i], fmt.Sprintf("%s[%d]", path, i), depth))
	}
	return b.String()
}

func (w *walker) children(n *domain.Node, path string, depth int) string {
	return w.sequence(n.Content, path+".content", depth+1)
}

func (w *walker) node(n *domain.Node, path string, depth int) string {
	w.visited++

	if depth >= w.engine.maxDepth {
		w.report(path, n.Type, domain.IssueDepthExceeded, "nesting deeper than %d levels", w.engine.maxDepth)
		return ""
	}
	if n.Malformed {
		w.report(path, n.Type, domain.IssueMalformedNode, "node payload does not match its type")
		return ""
	}

	switch n.Type {
	case domain.NodeText:
		return w.text(n, path)
	case domain.NodeDoc:
		return w.children(n, path, depth)
	case domain.NodeParagraph:
		return paragraphOpen + w.children(n, path, depth) + "</p>"
	case domain.NodeHeading:
		return w.heading(n, path, depth)
	case domain.NodeBulletList:
		return bulletListOpen + w.children(n, path, depth) + "</ul>"
	case domain.NodeOrderedList:
		return orderedListOpen + w.children(n, path, depth) + "</ol>"
	case domain.NodeListItem:
		return listItemOpen + w.children(n, path, depth) + "</li>"
	default:
		w.report(path, n.Type, domain.IssueUnknownNode, "unknown node type %q rendered as its children", n.Type)
		return w.children(n, path, depth)
	}
}

func (w *walker) heading(n *domain.Node, path string, depth int) string {
	level := 1
	attrs, err := n.HeadingAttrs()
	if err != nil {
		w.report(path, n.Type, domain.IssueMissingAttribute, "heading level is not a number: %v", err)
	} else if attrs.Level > 0 {
		level = min(attrs.Level, 6)
	}

	tag := "h" + strconv.Itoa(level)
	return "<" + tag + ` style="font-size: ` + headingSize(level) + `; font-weight: bold; margin: 1rem 0 0.5rem;">` +
		w.children(n, path, depth) +
		"</" + tag + ">"
}

func headingSize(level int) string {
	switch level {
	case 1:
		return "1.5rem"
	case 2:
		return "1.25rem"
	default:
		return "1.1rem"
	}
}

// text folds the marks over the escaped text: each mark wraps the result
// of the previous ones, so the first listed mark ends up innermost.
func (w *walker) text(n *domain.Node, path string) string {
	out := escape.HTML(n.Text)
	for i, m := range n.Marks {
		markPath := fmt.Sprintf("%s.marks[%d]", path, i)
		switch m.Type {
		case domain.MarkBold:
			out = "<strong>" + out + "</strong>"
		case domain.MarkItalic:
			out = "<em>" + out + "</em>"
		case domain.MarkStrike:
			out = "<s>" + out + "</s>"
		case domain.MarkLink:
			out = w.link(m, out, markPath)
		default:
			w.report(markPath, m.Type, domain.IssueUnknownMark, "unknown mark %q ignored", m.Type)
		}
	}
	return out
}

func (w *walker) link(m domain.Mark, inner, path string) string {
	// Only href decides; other attributes never cost the anchor.
	href, ok := m.Attrs["href"].(string)
	if !ok {
		w.report(path, m.Type, domain.IssueMissingAttribute, "link without a string href ignored")
		return inner
	}
	if w.engine.allowLink != nil && !w.engine.allowLink(href) {
		w.report(path, m.Type, domain.IssueBlockedLink, "link scheme not allowed: %q", href)
		return inner
	}
	return `<a href="` + escape.HTML(href) + `" target="_blank" rel="noopener noreferrer" style="` + linkStyle + `">` +
		inner + "</a>"
}
