package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xl-idp/unzipping/internal/observability"
)

// RedisStore keeps the identity cache in Redis as JSON values. Suited for
// deployments where several workers share one cache.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *observability.Logger
}

// NewRedisStore connects and pings. A zero ttl keeps entries forever.
func NewRedisStore(addr, password string, db int, ttl time.Duration, log *observability.Logger) (*RedisStore, error) {
	if log == nil {
		log = observability.Nop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("identity: redis ping: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl, log: log}, nil
}

func taxpayerKey(id string) string  { return tableTaxpayer + ":" + id }
func searchKey(query string) string { return tableSearch + ":" + query }

func (s *RedisStore) GetTaxpayer(ctx context.Context, taxpayerID string) (*Record, bool, error) {
	return s.get(ctx, taxpayerKey(taxpayerID))
}

func (s *RedisStore) PutTaxpayer(ctx context.Context, rec Record) error {
	return s.put(ctx, taxpayerKey(rec.TaxpayerID), rec)
}

func (s *RedisStore) GetSearch(ctx context.Context, query string) (*Record, bool, error) {
	return s.get(ctx, searchKey(query))
}

func (s *RedisStore) PutSearch(ctx context.Context, query string, rec Record) error {
	return s.put(ctx, searchKey(query), rec)
}

func (s *RedisStore) get(ctx context.Context, key string) (*Record, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("identity: redis get %s: %w", key, err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("identity: redis decode %s: %w", key, err)
	}
	return &rec, true, nil
}

func (s *RedisStore) put(ctx context.Context, key string, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("identity: redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
