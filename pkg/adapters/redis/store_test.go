package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/collecty/richtext/pkg/adapters/redis"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })

	return mr, store
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := setup(t)
	ports.RunContentStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, store := setup(t, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Content{ID: "guide", Body: json.RawMessage(`[]`)}))

	assert.True(t, mr.Exists("test:doc:guide"))
	assert.False(t, mr.Exists("richtext:content:doc:guide"))
}

func TestRedisStore_ReservedLookingIDs(t *testing.T) {
	_, store := setup(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Content{ID: "guide", Body: json.RawMessage(`[]`)}))
	for _, id := range []string{"index", "changes", "meta:index", "meta:changes"} {
		require.NoError(t, store.Save(ctx, &domain.Content{ID: id, Body: json.RawMessage(`[]`)}), id)
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"changes", "guide", "index", "meta:changes", "meta:index"}, ids)

	got, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, "index", got.ID)
}

func TestRedisStore_TTLExpiresRecords(t *testing.T) {
	mr, store := setup(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Content{ID: "expiring", Body: json.RawMessage(`[]`)}))
	assert.Equal(t, time.Minute, mr.TTL("richtext:content:doc:expiring"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "expiring")
	assert.ErrorIs(t, err, domain.ErrContentNotFound)
}

func TestRedisStore_Watch(t *testing.T) {
	_, store := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, &domain.Content{ID: "guide", Body: json.RawMessage(`[]`)}))

	select {
	case id := <-changes:
		assert.Equal(t, "guide", id)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}
