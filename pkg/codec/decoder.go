package codec

import (
	"fmt"

	"github.com/collecty/richtext/pkg/domain"
	"github.com/tidwall/gjson"
)

type decoder struct {
	issues []domain.Issue
}

func (d *decoder) report(path, nodeType string, kind domain.IssueKind, format string, args ...any) {
	d.issues = append(d.issues, domain.Issue{
		Path:     path,
		NodeType: nodeType,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (d *decoder) nodes(arr gjson.Result, path string) []domain.Node {
	items := arr.Array()
	out := make([]domain.Node, 0, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if !item.IsObject() {
			d.report(itemPath, "", domain.IssueMalformedNode, "expected a node object, got %s", item.Type)
			out = append(out, domain.Node{Malformed: true})
			continue
		}
		out = append(out, d.node(item, itemPath))
	}
	return out
}

func (d *decoder) node(obj gjson.Result, path string) domain.Node {
	var n domain.Node

	typ := obj.Get("type")
	if typ.Type == gjson.String {
		n.Type = typ.Str
	} else {
		d.report(path, "", domain.IssueMalformedNode, "missing or non-string type")
	}

	if attrs := obj.Get("attrs"); attrs.Exists() && attrs.Type != gjson.Null {
		if m, ok := attrs.Value().(map[string]any); ok {
			n.Attrs = m
		} else {
			d.report(path, n.Type, domain.IssueMalformedNode, "attrs is not an object")
		}
	}

	content := obj.Get("content")
	hasContent := content.Exists() && content.Type != gjson.Null
	if hasContent {
		if content.IsArray() {
			n.Content = d.nodes(content, path+".content")
		} else {
			d.report(path, n.Type, domain.IssueMalformedNode, "content is not a list")
			n.Malformed = true
		}
	}

	if n.IsText() {
		d.text(obj, path, &n)
		if hasContent {
			d.report(path, n.Type, domain.IssueMalformedNode, "text node must not have content")
		}
		return n
	}

	if text := obj.Get("text"); text.Exists() {
		d.report(path, n.Type, domain.IssueMalformedNode, "container node must not carry text")
	}
	if marks := obj.Get("marks"); marks.Exists() && marks.Type != gjson.Null {
		d.report(path, n.Type, domain.IssueMalformedNode, "container node must not carry marks")
	}
	return n
}

func (d *decoder) text(obj gjson.Result, path string, n *domain.Node) {
	text := obj.Get("text")
	if text.Type != gjson.String {
		if text.Exists() {
			d.report(path, n.Type, domain.IssueMalformedNode, "text is not a string")
		} else {
			d.report(path, n.Type, domain.IssueMalformedNode, "text node without text")
		}
		n.Malformed = true
		return
	}
	n.Text = text.Str

	marks := obj.Get("marks")
	if !marks.Exists() || marks.Type == gjson.Null {
		return
	}
	if !marks.IsArray() {
		d.report(path, n.Type, domain.IssueMalformedNode, "marks is not a list")
		return
	}
	for i, m := range marks.Array() {
		markPath := fmt.Sprintf("%s.marks[%d]", path, i)
		mt := m.Get("type")
		if !m.IsObject() || mt.Type != gjson.String {
			d.report(markPath, "", domain.IssueUnknownMark, "mark without a string type ignored")
			continue
		}
		mark := domain.Mark{Type: mt.Str}
		if attrs, ok := m.Get("attrs").Value().(map[string]any); ok {
			mark.Attrs = attrs
		}
		n.Marks = append(n.Marks, mark)
	}
}
