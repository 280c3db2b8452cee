package ports_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/ports"
)

// mockStore is the smallest ContentStore that satisfies the contract.
type mockStore struct {
	data map[string]*domain.Content
}

func (m *mockStore) Save(ctx context.Context, c *domain.Content) error {
	if c.ID == "" {
		return errors.New("missing id")
	}
	m.data[c.ID] = c.Clone()
	return nil
}

func (m *mockStore) Load(ctx context.Context, id string) (*domain.Content, error) {
	c, ok := m.data[id]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	return c.Clone(), nil
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func (m *mockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func TestContentStore_Contract(t *testing.T) {
	ports.RunContentStoreContract(t, &mockStore{data: make(map[string]*domain.Content)})
}
