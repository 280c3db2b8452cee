package dsl

import (
	"github.com/collecty/richtext/pkg/domain"
)

// Part is anything that can become a document node.
type Part interface {
	Build() domain.Node
}

// NodeBuilder builds a container node.
type NodeBuilder struct {
	node domain.Node
}

// Block creates a container of any type, including types the renderer does
// not know about.
func Block(nodeType string, parts ...Part) *NodeBuilder {
	nb := &NodeBuilder{node: domain.Node{Type: nodeType}}
	for _, p := range parts {
		nb.node.Content = append(nb.node.Content, p.Build())
	}
	return nb
}

// Doc creates the root doc node.
func Doc(parts ...Part) *NodeBuilder {
	return Block(domain.NodeDoc, parts...)
}

// Paragraph creates a paragraph.
func Paragraph(parts ...Part) *NodeBuilder {
	return Block(domain.NodeParagraph, parts...)
}

// Heading creates a heading of the given level.
func Heading(level int, parts ...Part) *NodeBuilder {
	return Block(domain.NodeHeading, parts...).Attr("level", level)
}

// BulletList creates an unordered list.
func BulletList(items ...Part) *NodeBuilder {
	return Block(domain.NodeBulletList, items...)
}

// OrderedList creates an ordered list.
func OrderedList(items ...Part) *NodeBuilder {
	return Block(domain.NodeOrderedList, items...)
}

// Item creates a list item.
func Item(parts ...Part) *NodeBuilder {
	return Block(domain.NodeListItem, parts...)
}

// Attr sets a node attribute.
func (b *NodeBuilder) Attr(key string, value any) *NodeBuilder {
	if b.node.Attrs == nil {
		b.node.Attrs = make(map[string]any)
	}
	b.node.Attrs[key] = value
	return b
}

// Build returns a copy of the node.
func (b *NodeBuilder) Build() domain.Node {
	return clone(b.node)
}

// TextBuilder builds a text leaf and its marks.
type TextBuilder struct {
	node domain.Node
}

// Text creates a text leaf.
func Text(s string) *TextBuilder {
	return &TextBuilder{node: domain.Node{Type: domain.NodeText, Text: s}}
}

// Mark appends an arbitrary mark. Marks apply in the order they are added,
// the first one innermost.
func (t *TextBuilder) Mark(markType string, attrs map[string]any) *TextBuilder {
	t.node.Marks = append(t.node.Marks, domain.Mark{Type: markType, Attrs: attrs})
	return t
}

// Bold appends a bold mark.
func (t *TextBuilder) Bold() *TextBuilder { return t.Mark(domain.MarkBold, nil) }

// Italic appends an italic mark.
func (t *TextBuilder) Italic() *TextBuilder { return t.Mark(domain.MarkItalic, nil) }

// Strike appends a strike mark.
func (t *TextBuilder) Strike() *TextBuilder { return t.Mark(domain.MarkStrike, nil) }

// Link appends a link mark pointing at href.
func (t *TextBuilder) Link(href string) *TextBuilder {
	return t.Mark(domain.MarkLink, map[string]any{"href": href})
}

// Build returns a copy of the text node.
func (t *TextBuilder) Build() domain.Node {
	return clone(t.node)
}

// Seq builds a top-level sequence instead of a doc node.
func Seq(parts ...Part) domain.Nodes {
	nodes := make(domain.Nodes, 0, len(parts))
	for _, p := range parts {
		nodes = append(nodes, p.Build())
	}
	return nodes
}

func clone(n domain.Node) domain.Node {
	out := n
	if n.Attrs != nil {
		out.Attrs = make(map[string]any, len(n.Attrs))
		for k, v := range n.Attrs {
			out.Attrs[k] = v
		}
	}
	if n.Marks != nil {
		out.Marks = make([]domain.Mark, len(n.Marks))
		copy(out.Marks, n.Marks)
	}
	if n.Content != nil {
		out.Content = make([]domain.Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = clone(c)
		}
	}
	return out
}
