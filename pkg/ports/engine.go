package ports

import (
	"context"

	"github.com/collecty/richtext/pkg/domain"
)

// DocumentEngine is the rendering core as seen by transport adapters.
type DocumentEngine interface {
	// RenderJSON decodes a stored document body and renders it to HTML.
	// Only undecodable bytes produce an error; shape problems are returned
	// as issues next to the best-effort HTML.
	RenderJSON(ctx context.Context, body []byte) (*domain.Rendered, error)

	// ValidateJSON reports every problem of a document body without rendering it.
	ValidateJSON(ctx context.Context, body []byte) ([]domain.Issue, error)
}
