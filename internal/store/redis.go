package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/gravitas-games/gridstash/pkg/inventory"
)

// RedisStore keeps one JSON document per owner under prefix+owner.
type RedisStore struct {
	client *redis.Client
	prefix string
	codec  Codec
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, prefix string, codec Codec) *RedisStore {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &RedisStore{client: client, prefix: prefix, codec: codec}
}

// Key returns the redis key for owner.
func (s *RedisStore) Key(owner string) string {
	return s.prefix + owner
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, owner string) (inventory.SaveData, bool, error) {
	raw, err := s.client.Get(ctx, s.Key(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return inventory.SaveData{}, false, nil
	}
	if err != nil {
		return inventory.SaveData{}, false, fmt.Errorf("failed to load save for %s: %w", owner, err)
	}
	data, err := s.codec.Decode(raw)
	if err != nil {
		return inventory.SaveData{}, false, fmt.Errorf("failed to decode save for %s: %w", owner, err)
	}
	return data, true, nil
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, owner string, data inventory.SaveData) error {
	raw, err := s.codec.Encode(data)
	if err != nil {
		return fmt.Errorf("failed to encode save for %s: %w", owner, err)
	}
	if err := s.client.Set(ctx, s.Key(owner), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write save for %s: %w", owner, err)
	}
	return nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, owner string) error {
	return s.client.Del(ctx, s.Key(owner)).Err()
}
