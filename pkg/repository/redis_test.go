package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/example/marketplace/pkg/config"
	"github.com/example/marketplace/pkg/models"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cfg := &config.RedisConfig{Addr: mr.Addr(), IdempotencyTTL: time.Hour, UserCacheTTL: time.Minute}
	repo := NewRedisRepositoryWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), cfg)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, mr
}

func TestIdempotencyStore(t *testing.T) {
	r, mr := newTestRedis(t)
	store := NewIdempotencyStore(r)
	ctx := context.Background()

	result, reserved, err := store.Reserve(ctx, "3", "abc")
	require.NoError(t, err)
	assert.True(t, reserved)
	assert.Empty(t, result)
	assert.True(t, mr.Exists("idem:order:3:abc"))

	// in flight
	result, reserved, err = store.Reserve(ctx, "3", "abc")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Empty(t, result)

	// same key, different buyer
	_, reserved, err = store.Reserve(ctx, "4", "abc")
	require.NoError(t, err)
	assert.True(t, reserved)

	require.NoError(t, store.Complete(ctx, "3", "abc", "42"))
	result, reserved, err = store.Reserve(ctx, "3", "abc")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, "42", result)

	ttl := mr.TTL("idem:order:3:abc")
	assert.Equal(t, time.Hour, ttl)
}

func TestIdempotencyRelease(t *testing.T) {
	r, mr := newTestRedis(t)
	store := NewIdempotencyStore(r)
	ctx := context.Background()

	_, reserved, err := store.Reserve(ctx, "3", "k")
	require.NoError(t, err)
	require.True(t, reserved)

	require.NoError(t, store.Release(ctx, "3", "k"))
	assert.False(t, mr.Exists("idem:order:3:k"))

	_, reserved, err = store.Reserve(ctx, "3", "k")
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestIdempotencyKeyExpires(t *testing.T) {
	r, mr := newTestRedis(t)
	store := NewIdempotencyStore(r)
	ctx := context.Background()

	_, _, err := store.Reserve(ctx, "3", "k")
	require.NoError(t, err)
	mr.FastForward(2 * time.Hour)

	_, reserved, err := store.Reserve(ctx, "3", "k")
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestUserRepositoryReadThrough(t *testing.T) {
	db := openTestDB(t)
	cache, mr := newTestRedis(t)
	repo := NewUserRepository(db, cache)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{ID: 7, Username: "ada", IsStaff: true}).Error)

	u, err := repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)
	assert.True(t, mr.Exists("user:7"))
	assert.Equal(t, time.Minute, mr.TTL("user:7"))

	// served from cache once the row is gone
	require.NoError(t, db.Delete(&models.User{}, 7).Error)
	u, err = repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)
	assert.True(t, u.IsStaff)

	_, err = repo.FindByID(ctx, 8)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryWithoutCache(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db, nil)
	require.NoError(t, db.Create(&models.User{ID: 7, Username: "ada"}).Error)

	u, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)
}
