package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/application/ports"
	"github.com/redis/go-redis/v9"
)

var _ ports.SessionStore = (*Redis)(nil)

// Redis store compartido entre instancias.
type Redis struct {
	client *redis.Client
}

// NewRedis conecta a partir de una URL redis:// y verifica con PING.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{client: client}, nil
}

// NewRedisFromClient envuelve un cliente existente.
func NewRedisFromClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// RegisterFailure INCR; la expiración se fija solo en el primer fallo de la ventana.
func (r *Redis) RegisterFailure(ctx context.Context, key string, window time.Duration) (int, error) {
	k := failurePrefix + key
	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, window).Err(); err != nil {
			return 0, err
		}
	}
	return int(n), nil
}

func (r *Redis) Failures(ctx context.Context, key string) (int, error) {
	n, err := r.client.Get(ctx, failurePrefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Redis) ResetFailures(ctx context.Context, key string) error {
	return r.client.Del(ctx, failurePrefix+key).Err()
}

// Revoke SET con TTL; la existencia de la clave es lo que cuenta.
func (r *Redis) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	return r.client.Set(ctx, revokedPrefix+jti, "1", ttl).Err()
}

func (r *Redis) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, err := r.client.Get(ctx, revokedPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
