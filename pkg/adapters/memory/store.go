package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/collecty/richtext/pkg/domain"
)

// Store implements ports.ContentStore in memory.
// Safe for concurrent use.
type Store struct {
	data     map[string]*domain.Content
	watchers map[chan string]struct{}
	mu       sync.RWMutex
	now      func() time.Time
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data:     make(map[string]*domain.Content),
		watchers: make(map[chan string]struct{}),
		now:      time.Now,
	}
}

// Save persists the content in memory.
func (s *Store) Save(ctx context.Context, content *domain.Content) error {
	if content == nil || content.ID == "" {
		return errors.New("content id cannot be empty")
	}

	// Copy on write so the caller keeps ownership of its record
	copied := content.Clone()
	if copied.UpdatedAt.IsZero() {
		copied.UpdatedAt = s.now().UTC()
	}

	s.mu.Lock()
	s.data[content.ID] = copied
	s.mu.Unlock()

	s.notify(content.ID)
	return nil
}

// Load retrieves the content from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.data[id]
	if !ok {
		return nil, domain.ErrContentNotFound
	}

	return content.Clone(), nil
}

// Delete removes the content.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, existed := s.data[id]
	delete(s.data, id)
	s.mu.Unlock()

	if existed {
		s.notify(id)
	}
	return nil
}

// List returns stored content IDs in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Watch implements ports.Watchable.
// Slow receivers miss notifications rather than blocking writers.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, 16)

	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, ch)
		close(ch)
		s.mu.Unlock()
	}()

	return ch, nil
}

func (s *Store) notify(id string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for ch := range s.watchers {
		select {
		case ch <- id:
		default:
		}
	}
}
