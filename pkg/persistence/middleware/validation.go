package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/collecty/richtext/pkg/codec"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/ports"
	"github.com/collecty/richtext/pkg/schema"
)

type validationMiddleware struct {
	next   ports.ContentStore
	strict bool
}

// NewValidationMiddleware rejects saves whose body is not a decodable
// document. In strict mode any structural violation is rejected as well,
// so only documents that render without issues are stored.
func NewValidationMiddleware(strict bool) Middleware {
	return func(next ports.ContentStore) ports.ContentStore {
		return &validationMiddleware{next: next, strict: strict}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, content *domain.Content) error {
	if content == nil {
		return errors.New("content cannot be nil")
	}

	in, issues, err := codec.Decode(content.Body)
	if err != nil {
		return err
	}

	if m.strict {
		if len(issues) > 0 {
			return fmt.Errorf("%w: %s", domain.ErrInvalidDocument, issues[0])
		}
		if err := schema.ValidateDocument(in); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
		}
	}

	return m.next.Save(ctx, content)
}

func (m *validationMiddleware) Load(ctx context.Context, id string) (*domain.Content, error) {
	return m.next.Load(ctx, id)
}

func (m *validationMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
