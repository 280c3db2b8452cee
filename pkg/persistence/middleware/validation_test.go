package middleware_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/collecty/richtext/pkg/adapters/memory"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/persistence/middleware"
	"github.com/collecty/richtext/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationMiddleware(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		body    string
		strict  bool
		wantErr bool
	}{
		{"valid document", secretBody, false, false},
		{"null body", `null`, true, false},
		{"broken json", `{"type":`, false, true},
		{"scalar body", `42`, false, true},
		{"unknown mark lenient", `{"type":"text","text":"x","marks":[{"type":"glow"}]}`, false, false},
		{"unknown mark strict", `{"type":"text","text":"x","marks":[{"type":"glow"}]}`, true, true},
		{"bad text strict", `{"type":"text","text":1}`, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := middleware.NewValidationMiddleware(tt.strict)(memory.NewStore())
			err := store.Save(ctx, &domain.Content{ID: "doc", Body: json.RawMessage(tt.body)})
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidDocument)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWrap_Contract(t *testing.T) {
	store := middleware.Wrap(memory.NewStore(),
		middleware.NewValidationMiddleware(true),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)}),
	)
	ports.RunContentStoreContract(t, store)
}

func TestWrap_KeepsWatch(t *testing.T) {
	inner := memory.NewStore()
	store := middleware.Wrap(inner, middleware.NewValidationMiddleware(false))

	w, ok := store.(ports.Watchable)
	require.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, err := w.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, &domain.Content{ID: "a", Body: json.RawMessage(`[]`)}))
	select {
	case id := <-changes:
		assert.Equal(t, "a", id)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}
