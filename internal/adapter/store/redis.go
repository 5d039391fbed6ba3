package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores JSON-encoded values under a per-store key prefix. It
// satisfies the same narrow port as Memory so it can be swapped in via
// config without touching business logic.
type Redis[T any] struct {
	rdb    *redis.Client
	prefix string
}

func NewRedis[T any](rdb *redis.Client, prefix string) *Redis[T] {
	return &Redis[T]{rdb: rdb, prefix: prefix + ":"}
}

func (r *Redis[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var v T
	raw, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("decode %s%s: %w", r.prefix, key, err)
	}
	return v, true, nil
}

func (r *Redis[T]) Put(ctx context.Context, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s%s: %w", r.prefix, key, err)
	}
	return r.rdb.Set(ctx, r.prefix+key, raw, 0).Err()
}

func (r *Redis[T]) Delete(ctx context.Context, key string) (bool, error) {
	n, err := r.rdb.Del(ctx, r.prefix+key).Result()
	return n > 0, err
}

func (r *Redis[T]) All(ctx context.Context) ([]T, error) {
	var out []T
	iter := r.rdb.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		raw, err := r.rdb.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", iter.Val(), err)
		}
		out = append(out, v)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
