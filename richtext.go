package richtext

import (
	"context"
	"log/slog"
	"time"

	"github.com/collecty/richtext/internal/logging"
	"github.com/collecty/richtext/internal/render"
	"github.com/collecty/richtext/pkg/codec"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/schema"
)

// Renderer is the high-level entry point for the library.
// It wraps the internal render engine and adds logging, hooks and decoding.
// A Renderer is immutable after New and safe for concurrent use.
type Renderer struct {
	engine   *render.Engine
	hooks    domain.RenderHooks
	logger   *slog.Logger
	policy   *LinkPolicy
	maxDepth int
}

// Option defines a functional option for configuring the Renderer.
type Option func(*Renderer)

// WithLogger sets a custom structured logger for the renderer.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.RenderHooks) Option {
	return func(r *Renderer) {
		r.hooks = hooks
	}
}

// WithLinkPolicy restricts link hrefs to an allow-list of schemes.
// Links that fail the policy render as plain text with a blocked_link issue.
func WithLinkPolicy(p *LinkPolicy) Option {
	return func(r *Renderer) {
		r.policy = p
	}
}

// WithMaxDepth bounds document nesting (default 256).
func WithMaxDepth(depth int) Option {
	return func(r *Renderer) {
		r.maxDepth = depth
	}
}

// New initializes a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = logging.NewNop()
	}

	var engineOpts []render.Option
	if r.policy != nil {
		engineOpts = append(engineOpts, render.WithLinkFilter(r.policy.Allow))
	}
	if r.maxDepth > 0 {
		engineOpts = append(engineOpts, render.WithMaxDepth(r.maxDepth))
	}
	r.engine = render.New(engineOpts...)

	return r
}

// Render converts a node, a node pointer or a sequence of nodes to an HTML
// fragment. It never fails: malformed input degrades to empty output for the
// offending subtree.
func (r *Renderer) Render(ctx context.Context, in domain.Input) string {
	return r.RenderResult(ctx, in).HTML
}

// RenderResult is Render plus the issues found along the way.
func (r *Renderer) RenderResult(ctx context.Context, in domain.Input) *domain.Rendered {
	return r.run(ctx, in, nil)
}

// RenderJSON decodes a stored document body and renders it.
// Only syntactically invalid JSON is an error; shape problems become issues.
func (r *Renderer) RenderJSON(ctx context.Context, body []byte) (*domain.Rendered, error) {
	in, issues, err := codec.Decode(body)
	if err != nil {
		r.logger.Warn("document decode failed", "error", err)
		return nil, err
	}
	return r.run(ctx, in, issues), nil
}

// ValidateJSON reports every problem with a document body: decode issues,
// structural violations and the issues a render pass would raise.
func (r *Renderer) ValidateJSON(ctx context.Context, body []byte) ([]domain.Issue, error) {
	in, issues, err := codec.Decode(body)
	if err != nil {
		return nil, err
	}
	return r.Validate(in, issues...), nil
}

// Validate checks a decoded document without firing render hooks.
// Extra issues, e.g. from decoding, are merged in front of the findings.
func (r *Renderer) Validate(in domain.Input, extra ...domain.Issue) []domain.Issue {
	return merge(extra, schema.Issues(schema.ValidateDocument(in)), r.engine.Render(in).Issues)
}

func (r *Renderer) run(ctx context.Context, in domain.Input, decodeIssues []domain.Issue) *domain.Rendered {
	start := time.Now()
	res := r.engine.Render(in)
	issues := merge(decodeIssues, res.Issues)

	now := time.Now()
	if r.hooks.OnIssue != nil {
		for _, is := range issues {
			r.hooks.OnIssue(ctx, &domain.IssueEvent{
				EventBase: domain.EventBase{Timestamp: now, Type: domain.EventIssue},
				Issue:     is,
			})
		}
	}

	ev := &domain.RenderEvent{
		EventBase: domain.EventBase{Timestamp: now, Type: domain.EventRender},
		Shape:     domain.Shape(in),
		Nodes:     res.Nodes,
		Bytes:     len(res.HTML),
		Issues:    len(issues),
		Duration:  now.Sub(start),
	}
	if r.hooks.OnRender != nil {
		r.hooks.OnRender(ctx, ev)
	}

	r.logger.Debug("document rendered",
		"shape", ev.Shape,
		"nodes", ev.Nodes,
		"bytes", ev.Bytes,
		"issues", ev.Issues,
		"duration", ev.Duration,
	)
	for _, is := range issues {
		r.logger.Debug("document issue", "path", is.Path, "kind", is.Kind, "message", is.Message)
	}

	return &domain.Rendered{HTML: res.HTML, Issues: issues}
}

// merge concatenates issue groups. An issue whose (path, kind) pair was
// already reported by an earlier group is dropped, so the decoder's more
// specific message wins over the renderer's restatement of it.
func merge(groups ...[]domain.Issue) []domain.Issue {
	type key struct {
		path string
		kind domain.IssueKind
	}
	seen := make(map[key]struct{})
	var out []domain.Issue
	for _, group := range groups {
		added := make([]key, 0, len(group))
		for _, is := range group {
			k := key{is.Path, is.Kind}
			if _, ok := seen[k]; ok {
				continue
			}
			added = append(added, k)
			out = append(out, is)
		}
		for _, k := range added {
			seen[k] = struct{}{}
		}
	}
	return out
}

var defaultRenderer = New()

// Render converts in to HTML with default settings.
func Render(in domain.Input) string {
	return defaultRenderer.Render(context.Background(), in)
}

// RenderJSON decodes a JSON document and renders it with default settings.
func RenderJSON(body []byte) (string, error) {
	res, err := defaultRenderer.RenderJSON(context.Background(), body)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// PlainText returns the unescaped text of a document with block boundaries
// as newlines.
func PlainText(in domain.Input) string {
	return render.PlainText(in)
}
