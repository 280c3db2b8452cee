package domain

import "fmt"

// IssueKind categorizes a non-fatal document problem.
type IssueKind string

const (
	IssueMalformedNode    IssueKind = "malformed_node"
	IssueUnknownNode      IssueKind = "unknown_node"
	IssueUnknownMark      IssueKind = "unknown_mark"
	IssueMissingAttribute IssueKind = "missing_attribute"
	IssueBlockedLink      IssueKind = "blocked_link"
	IssueDepthExceeded    IssueKind = "depth_exceeded"
)

// Issue is a problem found in a document that did not stop rendering.
// Path locates the node, e.g. "$.content[0].content[2]".
type Issue struct {
	Path     string    `json:"path"`
	NodeType string    `json:"node_type,omitempty"`
	Kind     IssueKind `json:"kind"`
	Message  string    `json:"message"`
}

func (i Issue) String() string {
	if i.NodeType == "" {
		return fmt.Sprintf("%s: %s (%s)", i.Path, i.Message, i.Kind)
	}
	return fmt.Sprintf("%s [%s]: %s (%s)", i.Path, i.NodeType, i.Message, i.Kind)
}
