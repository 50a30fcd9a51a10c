package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("abc"))
	assert.Equal(t, "lock:session:abc", lockKey("abc"))
}

// unreachableStore points at a closed port so every command fails fast.
func unreachableStore(t *testing.T) *RedisSessionStore {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStore(client, time.Minute, 0)
}

func TestRedisSessionStore_ConnectionErrorsAreWrapped(t *testing.T) {
	store := unreachableStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorContains(t, err, "redis get session")

	err = store.Save(ctx, &domain.Session{ID: "s1"})
	assert.ErrorContains(t, err, "redis set session")

	_, err = store.Lock(ctx, "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrOperationInFlight)

	assert.Error(t, store.Ping(ctx))
}

func newMiniStore(t *testing.T, ttl, lockTTL time.Duration) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStore(client, ttl, lockTTL), mr
}

func TestRedisSessionStore_CreateGet(t *testing.T) {
	store, mr := newMiniStore(t, 30*time.Minute, 0)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Session{ID: "s1", Currency: "EUR"}))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, 30*time.Minute, mr.TTL(sessionKey("s1")))
}

func TestRedisSessionStore_CreateRejectsExisting(t *testing.T) {
	store, _ := newMiniStore(t, time.Minute, 0)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Session{ID: "s1", Currency: "EUR"}))
	err := store.Create(ctx, &domain.Session{ID: "s1", Currency: "GBP"})
	assert.ErrorContains(t, err, "already exists")

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Currency)
}

func TestRedisSessionStore_NotFound(t *testing.T) {
	store, mr := newMiniStore(t, time.Minute, 0)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, store.Create(ctx, &domain.Session{ID: "s1"}))
	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRedisSessionStore_SaveRefreshesTTL(t *testing.T) {
	store, mr := newMiniStore(t, time.Minute, 0)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Session{ID: "s1"}))
	mr.FastForward(45 * time.Second)
	require.Equal(t, 15*time.Second, mr.TTL(sessionKey("s1")))

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "s1", Currency: "NGN"}))
	assert.Equal(t, time.Minute, mr.TTL(sessionKey("s1")))

	mr.FastForward(45 * time.Second)
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "NGN", got.Currency)
}

func TestRedisSessionStore_DropsCVV(t *testing.T) {
	store, _ := newMiniStore(t, time.Minute, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "s1", Booking: &domain.Booking{
		Payment: &domain.PaymentMethod{Kind: domain.PaymentCard, Card: &domain.Card{Number: "4111", CVV: "123"}},
	}}))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got.Booking.Payment.Card.CVV)
}

func TestRedisSessionStore_LockRejectsConcurrentOperation(t *testing.T) {
	store, mr := newMiniStore(t, time.Minute, 5*time.Second)
	ctx := context.Background()

	release, err := store.Lock(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, mr.TTL(lockKey("s1")))

	_, err = store.Lock(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrOperationInFlight)

	release()
	assert.False(t, mr.Exists(lockKey("s1")))

	again, err := store.Lock(ctx, "s1")
	require.NoError(t, err)
	again()
}

func TestRedisSessionStore_ReleaseKeepsForeignLock(t *testing.T) {
	store, mr := newMiniStore(t, time.Minute, 5*time.Second)
	ctx := context.Background()

	release, err := store.Lock(ctx, "s1")
	require.NoError(t, err)

	// the lock expired and another request took it over
	mr.FastForward(6 * time.Second)
	require.False(t, mr.Exists(lockKey("s1")))
	other, err := store.Lock(ctx, "s1")
	require.NoError(t, err)

	release()
	assert.True(t, mr.Exists(lockKey("s1")))

	_, err = store.Lock(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrOperationInFlight)

	other()
	assert.False(t, mr.Exists(lockKey("s1")))
}

func TestRedisSessionStore_Ping(t *testing.T) {
	store, _ := newMiniStore(t, time.Minute, 0)

	assert.NoError(t, store.Ping(context.Background()))
}
