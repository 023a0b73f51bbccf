package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nhle/eventcal/internal/model"
)

// redisClient is the subset of *redis.Client the store uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisStore keeps the collection as a JSON array under one key.
type RedisStore struct {
	client redisClient
	key    string
}

// NewRedisStore connects to cfg.RedisAddr and checks the connection.
func NewRedisStore(ctx context.Context, cfg model.StorageConfig, password string) (*RedisStore, error) {
	const op = "store.redis.New"

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: password,
		DB:       cfg.RedisDB,
	})

	s := newRedisStore(client, cfg.RedisKey)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: connecting to %s: %w", op, cfg.RedisAddr, err)
	}
	return s, nil
}

func newRedisStore(client redisClient, key string) *RedisStore {
	if key == "" {
		key = "events"
	}
	return &RedisStore{client: client, key: key}
}

// Load reads the collection. A missing key is an empty collection.
func (s *RedisStore) Load(ctx context.Context) ([]model.Event, error) {
	const op = "store.redis.Load"

	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []model.Event{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events, err := decodeEvents(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

// Save overwrites the key with events. The key never expires.
func (s *RedisStore) Save(ctx context.Context, events []model.Event) error {
	const op = "store.redis.Save"

	data, err := encodeEvents(events)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.client.Set(ctx, s.key, string(data), 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close closes the client connection.
func (s *RedisStore) Close() error {
	const op = "store.redis.Close"

	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
