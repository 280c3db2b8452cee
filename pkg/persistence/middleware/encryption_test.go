package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/collecty/richtext/pkg/adapters/memory"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/persistence/middleware"
	"github.com/collecty/richtext/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secretBody = `{"type":"paragraph","content":[{"type":"text","text":"my-secret-sauce"}]}`

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunContentStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := memory.NewStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secureStore := mw(underlyingStore)
	ctx := context.Background()

	original := &domain.Content{ID: "ebook", Title: "Secret Ebook", Body: json.RawMessage(secretBody)}
	require.NoError(t, secureStore.Save(ctx, original))

	// The underlying store only sees the envelope.
	stored, err := underlyingStore.Load(ctx, "ebook")
	require.NoError(t, err)
	assert.NotContains(t, string(stored.Body), "my-secret-sauce")
	assert.Contains(t, string(stored.Body), "__encrypted__")
	assert.Empty(t, stored.Title)

	loaded, err := secureStore.Load(ctx, "ebook")
	require.NoError(t, err)
	assert.Equal(t, "Secret Ebook", loaded.Title)
	assert.JSONEq(t, secretBody, string(loaded.Body))
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	secureStoreOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)
	require.NoError(t, secureStoreOld.Save(ctx, &domain.Content{ID: "rotation", Body: json.RawMessage(`"old"`)}))

	secureStoreNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, "rotation")
	require.NoError(t, err, "Load with rotated key failed")
	assert.JSONEq(t, `"old"`, string(loaded.Body))

	// Saving again re-encrypts with the new key.
	loaded.Body = json.RawMessage(`"new"`)
	require.NoError(t, secureStoreNew.Save(ctx, loaded))

	_, err = secureStoreOld.Load(ctx, "rotation")
	assert.Error(t, err, "Expected failure when loading new-key encryption with old-key middleware")
}

func TestEncryptionMiddleware_RejectsPlainRecords(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlyingStore.Save(ctx, &domain.Content{ID: "plain", Body: json.RawMessage(secretBody)}))

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	_, err := secureStore.Load(ctx, "plain")
	assert.ErrorContains(t, err, "envelope")

	_, err = secureStore.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrContentNotFound)
}

func TestEncryptionMiddleware_CorruptEnvelope(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlyingStore.Save(ctx, &domain.Content{ID: "corrupt", Body: json.RawMessage(`{"__encrypted__":`)}))

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	_, err := secureStore.Load(ctx, "corrupt")
	assert.ErrorContains(t, err, "failed to decode encrypted envelope")
	assert.NotContains(t, err.Error(), "missing encrypted data envelope")
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)
	parsed, err := middleware.ParseKey(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, parsed)

	_, err = middleware.ParseKey(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.ErrorContains(t, err, "32 bytes")

	_, err = middleware.ParseKey(strings.Repeat("!", 10))
	assert.Error(t, err)
}
