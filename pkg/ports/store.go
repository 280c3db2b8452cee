package ports

import (
	"context"

	"github.com/collecty/richtext/pkg/domain"
)

// ContentStore defines the interface for persisting content records.
type ContentStore interface {
	// Save creates or replaces the record with content.ID.
	Save(ctx context.Context, content *domain.Content) error

	// Load retrieves a record by ID.
	// Returns domain.ErrContentNotFound if the record does not exist.
	Load(ctx context.Context, id string) (*domain.Content, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored records in ascending order.
	List(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for stores that can notify about changes.
type Watchable interface {
	// Watch returns a channel that receives the ID of every record that changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
