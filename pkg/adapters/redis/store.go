package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/collecty/richtext/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// farFuture is the index score for records without expiration (2100-01-01).
const farFuture = 4102444800

// Store implements ports.ContentStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for content records.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for content records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "richtext:content:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Records and bookkeeping keys live in separate namespaces so no content ID
// can collide with the index or the change channel.
func (s *Store) key(id string) string {
	return s.prefix + "doc:" + id
}

func (s *Store) indexKey() string {
	return s.prefix + "meta:index"
}

func (s *Store) channel() string {
	return s.prefix + "meta:changes"
}

// Save persists the content to Redis and announces the change.
func (s *Store) Save(ctx context.Context, content *domain.Content) error {
	if content == nil || content.ID == "" {
		return errors.New("content id cannot be empty")
	}

	record := content.Clone()
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal content: %w", err)
	}

	pipe := s.client.Pipeline()

	pipe.Set(ctx, s.key(record.ID), data, s.ttl)

	// Score = Now + TTL so List can prune expired IDs lazily
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: record.ID,
	})
	pipe.Publish(ctx, s.channel(), record.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the content from Redis.
func (s *Store) Load(ctx context.Context, id string) (*domain.Content, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var content domain.Content
	if err := json.Unmarshal(val, &content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content: %w", err)
	}

	return &content, nil
}

// Delete removes the content.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()

	del := pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}

	if del.Val() > 0 {
		if err := s.client.Publish(ctx, s.channel(), id).Err(); err != nil {
			return fmt.Errorf("failed to publish change: %w", err)
		}
	}
	return nil
}

// List returns live content IDs, pruning expired entries from the index first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired content: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

// Watch implements ports.Watchable over Redis pub/sub, so every replica sees
// changes made by any other.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	sub := s.client.Subscribe(ctx, s.channel())

	// Wait for the subscription to be confirmed so no change is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
