package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nvandessel/auralie/internal/models"
)

// DefaultRedisPrefix namespaces keys when no prefix is configured.
const DefaultRedisPrefix = "auralie"

// RedisResultStore implements ResultStore on Redis. Each result is a
// string key holding its JSON document; a sorted set scored by start time
// indexes the IDs for listing.
type RedisResultStore struct {
	client *redis.Client
	prefix string
}

// NewRedisResultStore connects to addr and verifies the connection.
func NewRedisResultStore(ctx context.Context, addr, prefix string) (*RedisResultStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewRedisResultStoreFromClient(client, prefix), nil
}

// NewRedisResultStoreFromClient wraps an existing client. The store takes
// ownership of client and closes it on Close.
func NewRedisResultStoreFromClient(client *redis.Client, prefix string) *RedisResultStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisResultStore{client: client, prefix: prefix}
}

func (s *RedisResultStore) resultKey(id string) string {
	return s.prefix + ":simulation:" + id
}

func (s *RedisResultStore) indexKey() string {
	return s.prefix + ":simulations"
}

// Save writes the document and indexes its ID in one transaction.
func (s *RedisResultStore) Save(ctx context.Context, result *models.SimulationResult) error {
	if err := ValidateResult(result); err != nil {
		return fmt.Errorf("invalid result: %w", err)
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result %s: %w", result.ID, err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.resultKey(result.ID), data, 0)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{
			Score:  float64(result.StartTime.UnixMilli()),
			Member: result.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result %s: %w", result.ID, err)
	}
	return nil
}

// Get loads the document saved under id.
func (s *RedisResultStore) Get(ctx context.Context, id string) (*models.SimulationResult, error) {
	data, err := s.client.Get(ctx, s.resultKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("result %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result %s: %w", id, err)
	}
	var r models.SimulationResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode result %s: %w", id, err)
	}
	return &r, nil
}

// List walks the index newest first. IDs whose document has expired or
// been removed are skipped.
func (s *RedisResultStore) List(ctx context.Context) ([]models.Summary, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	out := make([]models.Summary, 0, len(ids))
	for _, id := range ids {
		r, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, r.Summarize())
	}
	sortSummaries(out)
	return out, nil
}

// Close closes the underlying client.
func (s *RedisResultStore) Close() error {
	return s.client.Close()
}
