package tokens

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore resolves delivery tokens from user hashes
// (HSET user:<id> fcmToken <token>), for deployments that keep device
// registrations in Redis instead of Postgres.
type RedisStore struct{ Rdb *redis.Client }

func OpenRedis(addr, password string, db int) *RedisStore {
	return &RedisStore{Rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})}
}

func (s *RedisStore) Ping(ctx context.Context) error { return s.Rdb.Ping(ctx).Err() }

// DeliveryToken returns the stored token, or "" when the user hash or the
// token field is absent.
func (s *RedisStore) DeliveryToken(ctx context.Context, userID string) (string, error) {
	token, err := s.Rdb.HGet(ctx, "user:"+userID, "fcmToken").Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}
