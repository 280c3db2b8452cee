package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/collecty/richtext"
	"github.com/collecty/richtext/internal/config"
	"github.com/collecty/richtext/pkg/adapters/file"
	"github.com/collecty/richtext/pkg/adapters/memory"
	"github.com/collecty/richtext/pkg/adapters/redis"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/persistence/middleware"
	"github.com/collecty/richtext/pkg/ports"
)

// NewRenderer configures a renderer from the render settings.
func NewRenderer(cfg config.RenderConfig, logger *slog.Logger, hooks domain.RenderHooks) *richtext.Renderer {
	opts := []richtext.Option{
		richtext.WithLogger(logger),
		richtext.WithHooks(hooks),
		richtext.WithMaxDepth(cfg.MaxDepth),
	}
	if len(cfg.AllowedSchemes) > 0 {
		opts = append(opts, richtext.WithLinkPolicy(richtext.NewLinkPolicy(cfg.AllowedSchemes...)))
	}
	return richtext.New(opts...)
}

// NewStore opens the configured content store and wraps it with the
// validation and encryption middlewares. The returned close function
// releases backend connections and is never nil.
func NewStore(cfg config.StoreConfig, logger *slog.Logger) (ports.ContentStore, func() error, error) {
	var (
		store   ports.ContentStore
		closeFn = func() error { return nil }
	)

	switch cfg.Backend {
	case config.BackendMemory, "":
		store = memory.NewStore()
	case config.BackendFile:
		store = file.New(cfg.Dir, file.WithFormat(file.Format(cfg.Format)))
	case config.BackendRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		store, closeFn = rs, rs.Close
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	// Validation sees plaintext, so it must run outside encryption.
	mws := []middleware.Middleware{middleware.NewValidationMiddleware(cfg.Strict)}
	if cfg.EncryptionKey != "" {
		enc, err := encryptionConfig(cfg)
		if err != nil {
			_ = closeFn()
			return nil, nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(enc))
	}

	logger.Debug("content store ready", "backend", cfg.Backend, "strict", cfg.Strict, "encrypted", cfg.EncryptionKey != "")
	return middleware.Wrap(store, mws...), closeFn, nil
}

func encryptionConfig(cfg config.StoreConfig) (middleware.EncryptionConfig, error) {
	active, err := middleware.ParseKey(cfg.EncryptionKey)
	if err != nil {
		return middleware.EncryptionConfig{}, fmt.Errorf("store.encryption_key: %w", err)
	}

	var errs []error
	fallbacks := make([][]byte, 0, len(cfg.FallbackKeys))
	for i, k := range cfg.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			errs = append(errs, fmt.Errorf("store.fallback_keys[%d]: %w", i, err))
			continue
		}
		fallbacks = append(fallbacks, key)
	}
	if len(errs) > 0 {
		return middleware.EncryptionConfig{}, errors.Join(errs...)
	}
	return middleware.EncryptionConfig{ActiveKey: active, FallbackKeys: fallbacks}, nil
}
