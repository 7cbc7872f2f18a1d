package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/stock-console/internal/domain/repository"
)

var _ repository.TokenRepository = (*RedisStore)(nil)

const redisKeyPrefix = "stock-console:session:"

// RedisStore guarda el token bajo stock-console:session:<name>.
// Permite que varias réplicas de la consola compartan la sesión del operador.
type RedisStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration // 0 = sin expiración
}

// NewRedisClient crea el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("tokenstore: ping redis %s: %w", addr, err)
	}
	return rdb, nil
}

// NewRedisStore construye el store sobre un cliente existente.
func NewRedisStore(rdb *redis.Client, name string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, key: redisKeyPrefix + name, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context) (string, error) {
	val, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: redis get: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	if err := s.rdb.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis del: %w", err)
	}
	return nil
}
