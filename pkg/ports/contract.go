package ports

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/collecty/richtext/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunContentStoreContract runs a suite of tests to verify that a ContentStore
// implementation adheres to the defined interface contract.
func RunContentStoreContract(t *testing.T, store ContentStore) {
	ctx := context.Background()
	id := "contract-" + time.Now().Format("20060102150405")
	body := json.RawMessage(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hi"}]}]}`)

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, &domain.Content{ID: id, Title: "Guide", Body: body})
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, id, loaded.ID)
		assert.Equal(t, "Guide", loaded.Title)
		assert.JSONEq(t, string(body), string(loaded.Body))
	})

	t.Run("Save replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &domain.Content{ID: id, Title: "Updated", Body: body}))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Updated", loaded.Title)
	})

	t.Run("Load isolates callers", func(t *testing.T) {
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		loaded.Title = "mutated"

		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.Title)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrContentNotFound)
	})

	t.Run("Save requires ID", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, &domain.Content{Body: body}))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrContentNotFound, "Load after Delete should return ErrContentNotFound")

		assert.NoError(t, store.Delete(ctx, id), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-a"
		id2 := id + "-b"
		require.NoError(t, store.Save(ctx, &domain.Content{ID: id2, Body: body}))
		require.NoError(t, store.Save(ctx, &domain.Content{ID: id1, Body: body}))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)

		i1, i2 := -1, -1
		for i, v := range ids {
			switch v {
			case id1:
				i1 = i
			case id2:
				i2 = i
			}
		}
		assert.Less(t, i1, i2, "List should be sorted")
	})
}
