package domain

import (
	"encoding/json"
	"time"
)

// Content is a stored lead-magnet or gated-content record.
// Body holds the document exactly as the editor produced it; stores treat it
// as opaque bytes and only renderers interpret it.
type Content struct {
	ID        string          `json:"id" yaml:"id"`
	Title     string          `json:"title,omitempty" yaml:"title,omitempty"`
	Body      json.RawMessage `json:"body" yaml:"-"`
	UpdatedAt time.Time       `json:"updated_at" yaml:"updated_at"`
}

// Clone returns a deep copy so callers cannot mutate stored records.
func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}
	out := *c
	if c.Body != nil {
		out.Body = append(json.RawMessage(nil), c.Body...)
	}
	return &out
}

// Rendered is the HTML produced for a document plus any problems found on the way.
type Rendered struct {
	HTML   string  `json:"html"`
	Issues []Issue `json:"issues,omitempty"`
}
