package domain

// Node type tags emitted by the editor.
const (
	NodeDoc         = "doc"
	NodeParagraph   = "paragraph"
	NodeHeading     = "heading"
	NodeBulletList  = "bulletList"
	NodeOrderedList = "orderedList"
	NodeListItem    = "listItem"
	NodeText        = "text"
)

// Mark type tags emitted by the editor.
const (
	MarkBold   = "bold"
	MarkItalic = "italic"
	MarkStrike = "strike"
	MarkLink   = "link"
)

// Node represents one element of a structured rich-text document.
// Container nodes carry Content; text nodes carry Text and Marks.
type Node struct {
	Type    string         `json:"type" yaml:"type"`
	Content []Node         `json:"content,omitempty" yaml:"content,omitempty"`
	Text    string         `json:"text,omitempty" yaml:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty" yaml:"marks,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`

	// Malformed is set by lenient decoders when the payload did not match
	// the declared type (e.g. a text node whose text is not a string).
	// Renderers produce no output for a malformed subtree.
	Malformed bool `json:"-" yaml:"-"`
}

// Mark is inline formatting attached to a text node.
type Mark struct {
	Type  string         `json:"type" yaml:"type"`
	Attrs map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// IsText reports whether the node is a text leaf.
func (n Node) IsText() bool {
	return n.Type == NodeText
}

// IsContainer reports whether t is one of the known container node types.
func IsContainer(t string) bool {
	switch t {
	case NodeDoc, NodeParagraph, NodeHeading, NodeBulletList, NodeOrderedList, NodeListItem:
		return true
	}
	return false
}

// IsKnownMark reports whether t is a mark type the renderer understands.
func IsKnownMark(t string) bool {
	switch t {
	case MarkBold, MarkItalic, MarkStrike, MarkLink:
		return true
	}
	return false
}
