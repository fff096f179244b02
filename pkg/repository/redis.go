package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/marketplace/pkg/config"
	"github.com/go-redis/redis/v8"
)

type RedisRepository struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return NewRedisRepositoryWithClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}), cfg)
}

func NewRedisRepositoryWithClient(client *redis.Client, cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{client: client, config: cfg}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisRepository) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// Cache for identity directory lookups
type UserCache struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

func userKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (r *RedisRepository) CacheUser(ctx context.Context, user *UserCache) error {
	return r.SetJSON(ctx, userKey(user.ID), user, r.config.UserCacheTTL)
}

func (r *RedisRepository) GetUserCache(ctx context.Context, userID uint) (*UserCache, error) {
	var user UserCache
	if err := r.GetJSON(ctx, userKey(userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

const idempotencyPending = "pending"

// IdempotencyStore guards order creation against client retries.
type IdempotencyStore struct {
	redis *RedisRepository
	ttl   time.Duration
}

func NewIdempotencyStore(r *RedisRepository) *IdempotencyStore {
	ttl := r.config.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{redis: r, ttl: ttl}
}

func idempotencyKey(scope, key string) string {
	return fmt.Sprintf("idem:order:%s:%s", scope, key)
}

// Reserve claims key for scope. When the key is already taken it returns the stored
// result ("" while the first request is still running) and reserved=false.
func (s *IdempotencyStore) Reserve(ctx context.Context, scope, key string) (result string, reserved bool, err error) {
	k := idempotencyKey(scope, key)
	ok, err := s.redis.client.SetNX(ctx, k, idempotencyPending, s.ttl).Result()
	if err != nil {
		return "", false, err
	}
	if ok {
		return "", true, nil
	}

	val, err := s.redis.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return s.Reserve(ctx, scope, key)
	}
	if err != nil {
		return "", false, err
	}
	if val == idempotencyPending {
		return "", false, nil
	}
	return val, false, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, scope, key, result string) error {
	return s.redis.client.Set(ctx, idempotencyKey(scope, key), result, s.ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	return s.redis.Del(ctx, idempotencyKey(scope, key))
}
