// Package render converts document trees into HTML fragments.
//
// The Engine is a pure tree-walk: it performs no I/O, holds no mutable state
// between calls and is safe for concurrent use. Problems found along the way
// are collected as domain.Issue values instead of failing the render.
package render

import (
	"github.com/collecty/richtext/pkg/domain"
)

// DefaultMaxDepth bounds document nesting. Deeper subtrees render as nothing.
const DefaultMaxDepth = 256

// LinkFilter decides whether an href may be emitted as an anchor.
type LinkFilter func(href string) bool

// Engine renders domain.Input values to HTML.
type Engine struct {
	allowLink LinkFilter
	maxDepth  int
}

// Option configures the Engine.
type Option func(*Engine)

// WithLinkFilter restricts which link hrefs are rendered as anchors.
// Rejected links keep their text but lose the anchor wrapper.
func WithLinkFilter(f LinkFilter) Option {
	return func(e *Engine) {
		e.allowLink = f
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// New creates a render Engine.
func New(opts ...Option) *Engine {
	e := &Engine{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one render pass.
type Result struct {
	HTML   string
	Issues []domain.Issue
	// Nodes counts every node visited, including text leaves.
	Nodes int
}

// Render converts in to HTML. A nil input, a nil *Node or an empty sequence
// all produce an empty string.
func (e *Engine) Render(in domain.Input) Result {
	w := &walker{engine: e}
	switch v := in.(type) {
	case domain.Node:
		w.b.WriteString(w.node(&v, "$", 0))
	case *domain.Node:
		if v != nil {
			w.b.WriteString(w.node(v, "$", 0))
		}
	case domain.Nodes:
		w.b.WriteString(w.sequence(v, "$", 0))
	}
	return Result{
		HTML:   w.b.String(),
		Issues: w.issues,
		Nodes:  w.visited,
	}
}
