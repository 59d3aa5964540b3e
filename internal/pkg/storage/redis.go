package storage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore guarda o registro da sessão no Redis.
// ttl == 0 significa sem expiração.
type RedisStore struct {
	rdb     *redis.Client
	timeout time.Duration
	ttl     time.Duration
}

// NewRedisStore cria um RedisStore sobre um cliente já configurado.
func NewRedisStore(rdb *redis.Client, timeout, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, timeout: timeout, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	val, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.rdb.Set(ctx, key, value, s.ttl).Err()
}

// Remove é idempotente: DEL de uma chave inexistente não é erro.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.rdb.Del(ctx, key).Err()
}

func (s *RedisStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
