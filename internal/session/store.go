// File: internal/session/store.go
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mottars_backend/internal/config"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Persisted session keys.
const (
	KeyAuth                     = "auth"
	KeySellerVerificationStatus = "seller_verification_status"
	KeyCurrentSellerID          = "current_seller_id"
)

// Store is the durable key-value store behind every session. It is the single
// source of truth: callers must not keep copies of what they read.
type Store interface {
	Get(ctx context.Context, sid, key string) (string, bool, error)
	Set(ctx context.Context, sid, key, value string) error
	Delete(ctx context.Context, sid string, keys ...string) error
}

// NewStore picks the store named by SESSION_STORE. redisClient is nil unless
// the redis store is configured.
func NewStore(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) (Store, error) {
	switch cfg.SessionStore {
	case "redis":
		if redisClient == nil {
			return nil, errors.New("redis session store selected but no redis client is available")
		}
		logger.Info("Using redis session store", zap.Duration("ttl", cfg.SessionTTL))
		return NewRedisStore(redisClient, cfg.SessionTTL), nil
	case "memory", "":
		logger.Info("Using in-memory session store", zap.Duration("ttl", cfg.SessionTTL))
		return NewMemoryStore(cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}

// --- Redis ---

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore keeps each session in one hash, refreshed to ttl on every write.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func redisKey(sid string) string {
	return "mottars:session:" + sid
}

func (s *redisStore) Get(ctx context.Context, sid, key string) (string, bool, error) {
	val, err := s.client.HGet(ctx, redisKey(sid), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis HGET %s: %w", key, err)
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, sid, key, value string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisKey(sid), key, value)
		if s.ttl > 0 {
			pipe.Expire(ctx, redisKey(sid), s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis HSET %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, redisKey(sid), keys...).Err(); err != nil {
		return fmt.Errorf("redis HDEL: %w", err)
	}
	return nil
}

// --- Memory ---

// memoryStore holds one map per session, like the redis hash, so a write
// renews the whole session and a delete leaves the expiry alone.
type memoryStore struct {
	mu    sync.Mutex
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemoryStore keeps sessions in process memory. A session expires ttl after
// its last write; ttl <= 0 means it never expires.
func NewMemoryStore(ttl time.Duration) Store {
	expiration := ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
	}
	return &memoryStore{
		cache: gocache.New(expiration, 10*time.Minute),
		ttl:   expiration,
	}
}

// fields returns the stored map for sid. Callers must not mutate it.
func (s *memoryStore) fields(sid string) (map[string]string, time.Time) {
	v, exp, ok := s.cache.GetWithExpiration(sid)
	if !ok {
		return nil, time.Time{}
	}
	m, _ := v.(map[string]string)
	return m, exp
}

func (s *memoryStore) Get(_ context.Context, sid, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, _ := s.fields(sid)
	v, ok := m[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, sid, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, _ := s.fields(sid)
	m := make(map[string]string, len(old)+1)
	for k, v := range old {
		m[k] = v
	}
	m[key] = value
	s.cache.Set(sid, m, s.ttl)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, sid string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, exp := s.fields(sid)
	if old == nil {
		return nil
	}
	m := make(map[string]string, len(old))
	for k, v := range old {
		m[k] = v
	}
	for _, k := range keys {
		delete(m, k)
	}
	if len(m) == 0 {
		s.cache.Delete(sid)
		return nil
	}
	remaining := gocache.NoExpiration
	if !exp.IsZero() {
		remaining = time.Until(exp)
		if remaining <= 0 {
			s.cache.Delete(sid)
			return nil
		}
	}
	s.cache.Set(sid, m, remaining)
	return nil
}
