// Package cache keeps sessions in Redis so several API replicas can
// share them.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/skywings/config"
	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/session"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultLockTTL bounds how long a crashed holder can keep a session
// busy. It must exceed the longest simulated latency.
const DefaultLockTTL = 30 * time.Second

// releaseScript deletes the lock only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisSessionStore struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

// NewRedisSessionStore falls back to DefaultLockTTL when lockTTL is not
// positive.
func NewRedisSessionStore(client *redis.Client, ttl, lockTTL time.Duration) *RedisSessionStore {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &RedisSessionStore{client: client, ttl: ttl, lockTTL: lockTTL}
}

func (c *RedisSessionStore) Create(ctx context.Context, s *domain.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ok, err := c.client.SetNX(ctx, sessionKey(s.ID), payload, c.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis create session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	return nil
}

func (c *RedisSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := c.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Save refreshes the session TTL.
func (c *RedisSessionStore) Save(ctx context.Context, s *domain.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := c.client.Set(ctx, sessionKey(s.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (c *RedisSessionStore) Lock(ctx context.Context, id string) (func(), error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, lockKey(id), token, c.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("redis acquire session lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrOperationInFlight
	}

	return func() {
		// the caller's ctx may already be done
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, c.client, []string{lockKey(id)}, token).Err()
	}, nil
}

func (c *RedisSessionStore) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func sessionKey(id string) string {
	return "session:" + id
}

func lockKey(id string) string {
	return fmt.Sprintf("lock:session:%s", id)
}

var _ session.Store = (*RedisSessionStore)(nil)
