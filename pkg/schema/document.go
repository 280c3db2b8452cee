package schema

import (
	"fmt"
	"sort"

	"github.com/collecty/richtext/pkg/domain"
)

// ValidateDocument checks every node of in against the document invariants.
// It returns nil or an *AggregateError listing all failures in document order.
func ValidateDocument(in domain.Input) error {
	v := &docValidator{}
	switch n := in.(type) {
	case domain.Node:
		v.node(&n, "$")
	case *domain.Node:
		if n != nil {
			v.node(n, "$")
		}
	case domain.Nodes:
		for i := range n {
			v.node(&n[i], fmt.Sprintf("$[%d]", i))
		}
	}
	if len(v.errs) > 0 {
		return &AggregateError{Errors: v.errs}
	}
	return nil
}

type docValidator struct {
	errs []error
}

func (v *docValidator) fail(path string, kind domain.IssueKind, reason string) {
	v.errs = append(v.errs, &ValidationError{Path: path, Reason: reason, Kind: kind})
}

// attrs validates in key order so results are stable.
func (v *docValidator) attrs(s Schema, data map[string]any, path string) {
	errs := Validate(s, data, path)
	sort.Slice(errs, func(i, j int) bool {
		return errs[i].(*ValidationError).Key < errs[j].(*ValidationError).Key
	})
	v.errs = append(v.errs, errs...)
}

func (v *docValidator) node(n *domain.Node, path string) {
	switch {
	case n.Malformed:
		v.fail(path, domain.IssueMalformedNode, "node payload does not match its type")
		return
	case n.Type == "":
		v.fail(path, domain.IssueMalformedNode, "missing type")
	case n.IsText():
		if len(n.Content) > 0 {
			v.fail(path, domain.IssueMalformedNode, "text node must not have content")
		}
		for i, m := range n.Marks {
			markPath := fmt.Sprintf("%s.marks[%d]", path, i)
			if !domain.IsKnownMark(m.Type) {
				v.fail(markPath, domain.IssueUnknownMark, fmt.Sprintf("unknown mark %q", m.Type))
				continue
			}
			if s, ok := MarkAttrs[m.Type]; ok {
				v.attrs(s, m.Attrs, markPath)
			}
		}
		return
	case domain.IsContainer(n.Type):
		if n.Text != "" {
			v.fail(path, domain.IssueMalformedNode, "container node must not carry text")
		}
		if len(n.Marks) > 0 {
			v.fail(path, domain.IssueMalformedNode, "container node must not carry marks")
		}
		if s, ok := NodeAttrs[n.Type]; ok {
			v.attrs(s, n.Attrs, path)
		}
	default:
		v.fail(path, domain.IssueUnknownNode, fmt.Sprintf("unknown node type %q", n.Type))
	}

	for i := range n.Content {
		v.node(&n.Content[i], fmt.Sprintf("%s.content[%d]", path, i))
	}
}
