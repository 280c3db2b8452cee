package cli

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/collecty/richtext/internal/config"
	"github.com/collecty/richtext/internal/logging"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkDoc = `{"type":"text","text":"click","marks":[{"type":"link","attrs":{"href":"javascript:alert(1)"}}]}`

func testKey(b byte) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Repeat(string(b), 32)))
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, NewLogger(config.LogConfig{Level: "debug", Format: "json"}))
	assert.NotNil(t, NewLogger(config.LogConfig{Level: "info", Format: "text"}))
	assert.NotNil(t, NewLogger(config.LogConfig{Level: "off"}))
}

func TestNewRenderer(t *testing.T) {
	ctx := context.Background()

	t.Run("No policy without schemes", func(t *testing.T) {
		r := NewRenderer(config.RenderConfig{MaxDepth: 256}, logging.NewNop(), domain.RenderHooks{})
		res, err := r.RenderJSON(ctx, []byte(linkDoc))
		require.NoError(t, err)
		assert.Contains(t, res.HTML, `href="javascript:alert(1)"`)
		assert.Empty(t, res.Issues)
	})

	t.Run("Allowed schemes enable the policy", func(t *testing.T) {
		cfg := config.RenderConfig{MaxDepth: 256, AllowedSchemes: []string{"https"}}
		r := NewRenderer(cfg, logging.NewNop(), domain.RenderHooks{})
		res, err := r.RenderJSON(ctx, []byte(linkDoc))
		require.NoError(t, err)
		assert.Equal(t, "click", res.HTML)
		require.Len(t, res.Issues, 1)
		assert.Equal(t, domain.IssueBlockedLink, res.Issues[0].Kind)
	})

	t.Run("Hooks fire", func(t *testing.T) {
		var renders int
		hooks := domain.RenderHooks{OnRender: func(context.Context, *domain.RenderEvent) { renders++ }}
		r := NewRenderer(config.RenderConfig{MaxDepth: 256}, logging.NewNop(), hooks)
		_, err := r.RenderJSON(ctx, []byte(`{"type":"text","text":"x"}`))
		require.NoError(t, err)
		assert.Equal(t, 1, renders)
	})
}

func roundTrip(t *testing.T, store ports.ContentStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Content{ID: "welcome", Title: "Hi", Body: []byte(`{"type":"text","text":"hi"}`)}))
	got, err := store.Load(ctx, "welcome")
	require.NoError(t, err)
	assert.Equal(t, "Hi", got.Title)
	assert.JSONEq(t, `{"type":"text","text":"hi"}`, string(got.Body))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"welcome"}, ids)
}

func TestNewStore(t *testing.T) {
	logger := logging.NewNop()

	t.Run("Memory", func(t *testing.T) {
		store, closeFn, err := NewStore(config.StoreConfig{Backend: config.BackendMemory}, logger)
		require.NoError(t, err)
		defer closeFn()
		roundTrip(t, store)
		_, watchable := store.(ports.Watchable)
		assert.True(t, watchable)
	})

	t.Run("File", func(t *testing.T) {
		dir := t.TempDir()
		store, closeFn, err := NewStore(config.StoreConfig{Backend: config.BackendFile, Dir: dir, Format: "yaml"}, logger)
		require.NoError(t, err)
		defer closeFn()
		roundTrip(t, store)
		assert.FileExists(t, filepath.Join(dir, "welcome.yaml"))
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.StoreConfig{Backend: config.BackendRedis}
		cfg.Redis.Addr = mr.Addr()
		cfg.Redis.Prefix = "test:"
		store, closeFn, err := NewStore(cfg, logger)
		require.NoError(t, err)
		defer closeFn()
		roundTrip(t, store)
		assert.True(t, mr.Exists("test:doc:welcome"))
	})

	t.Run("Unknown backend", func(t *testing.T) {
		_, _, err := NewStore(config.StoreConfig{Backend: "s3"}, logger)
		assert.ErrorContains(t, err, "unknown store backend")
	})

	t.Run("Strict rejects malformed documents", func(t *testing.T) {
		store, closeFn, err := NewStore(config.StoreConfig{Backend: config.BackendMemory, Strict: true}, logger)
		require.NoError(t, err)
		defer closeFn()
		err = store.Save(context.Background(), &domain.Content{ID: "bad", Body: []byte(`{"type":"text","text":7}`)})
		assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	})

	t.Run("Encryption at rest", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.StoreConfig{Backend: config.BackendFile, Dir: dir, Format: "json", EncryptionKey: testKey('a')}
		store, closeFn, err := NewStore(cfg, logger)
		require.NoError(t, err)
		defer closeFn()
		roundTrip(t, store)

		raw, err := os.ReadFile(filepath.Join(dir, "welcome.json"))
		require.NoError(t, err)
		assert.Contains(t, string(raw), "__encrypted__")
		assert.NotContains(t, string(raw), `"hi"`)
	})

	t.Run("Bad keys", func(t *testing.T) {
		_, _, err := NewStore(config.StoreConfig{Backend: config.BackendMemory, EncryptionKey: "short"}, logger)
		assert.ErrorContains(t, err, "store.encryption_key")

		cfg := config.StoreConfig{Backend: config.BackendMemory, EncryptionKey: testKey('a'), FallbackKeys: []string{testKey('b'), "nope"}}
		_, _, err = NewStore(cfg, logger)
		assert.ErrorContains(t, err, "store.fallback_keys[1]")
	})
}

func TestReadDocument(t *testing.T) {
	t.Run("Stdin", func(t *testing.T) {
		data, err := ReadDocument("-", strings.NewReader(`{"type":"text","text":"x"}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"text","text":"x"}`, string(data))

		data, err = ReadDocument("", strings.NewReader(`[]`))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("JSON file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"type":"text","text":"x"}]`), 0644))
		data, err := ReadDocument(path, nil)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"type":"text","text":"x"}]`, string(data))
	})

	t.Run("YAML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.yml")
		require.NoError(t, os.WriteFile(path, []byte("type: paragraph\ncontent:\n  - type: text\n    text: hi\n"), 0644))
		data, err := ReadDocument(path, nil)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"paragraph","content":[{"type":"text","text":"hi"}]}`, string(data))
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := ReadDocument(filepath.Join(t.TempDir(), "nope.json"), nil)
		assert.ErrorContains(t, err, "failed to open document")
	})
}

func TestLoadDocument(t *testing.T) {
	store, closeFn, err := NewStore(config.StoreConfig{Backend: config.BackendMemory}, logging.NewNop())
	require.NoError(t, err)
	defer closeFn()
	ctx := context.Background()

	_, err = LoadDocument(ctx, store, "missing")
	assert.ErrorIs(t, err, domain.ErrContentNotFound)

	require.NoError(t, store.Save(ctx, &domain.Content{ID: "a", Body: []byte(`[]`)}))
	body, err := LoadDocument(ctx, store, "a")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func TestWatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- WatchFile(ctx, path, logging.NewNop(), func() error {
			reloads.Add(1)
			return nil
		})
	}()

	require.Eventually(t, func() bool { return reloads.Load() == 1 }, time.Second, 10*time.Millisecond)

	// Other files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.json"), []byte(`[]`), 0644))
	require.NoError(t, os.WriteFile(path, []byte(`[{"type":"text","text":"x"}]`), 0644))

	require.Eventually(t, func() bool { return reloads.Load() >= 2 }, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("WatchFile did not stop")
	}
}
