package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "richtext:content:", cfg.Store.Redis.Prefix)
	assert.Equal(t, 256, cfg.Render.MaxDepth)
	assert.Empty(t, cfg.Render.AllowedSchemes)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "richtext.yaml")
	src := `
server:
  port: 9090
store:
  backend: redis
  redis:
    addr: redis:6379
    ttl: 24h
render:
  allowed_schemes: [https, mailto]
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, []string{"https", "mailto"}, cfg.Render.AllowedSchemes)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("RICHTEXT_SERVER_PORT", "7070")
	t.Setenv("RICHTEXT_STORE_BACKEND", "file")
	t.Setenv("RICHTEXT_STORE_DIR", "/tmp/content")
	t.Setenv("RICHTEXT_RENDER_ALLOWED_SCHEMES", "http, https")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "/tmp/content", cfg.Store.Dir)
	assert.Equal(t, []string{"http", "https"}, cfg.Render.AllowedSchemes)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("RICHTEXT_STORE_BACKEND", "postgres")
	t.Setenv("RICHTEXT_LOG_FORMAT", "xml")

	_, err := Load(New(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
	assert.Contains(t, err.Error(), "xml")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
