// Package session implementa ports.SessionStore en memoria (go-cache) y sobre Redis.
package session

import (
	"context"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/application/ports"
	gocache "github.com/patrickmn/go-cache"
)

var _ ports.SessionStore = (*Memory)(nil)

const (
	failurePrefix = "auth:fail:"
	revokedPrefix = "auth:jti:"
)

// Memory store de proceso único. Los datos se pierden al reiniciar.
type Memory struct{ c *gocache.Cache }

// NewMemory crea el store con limpieza periódica de expirados.
func NewMemory() *Memory {
	return &Memory{c: gocache.New(gocache.NoExpiration, time.Minute)}
}

func (m *Memory) RegisterFailure(_ context.Context, key string, window time.Duration) (int, error) {
	k := failurePrefix + key
	for {
		if err := m.c.Add(k, 1, window); err == nil {
			return 1, nil
		}
		// La ventana corre desde el primer fallo; Increment conserva la expiración.
		n, err := m.c.IncrementInt(k, 1)
		if err == nil {
			return n, nil
		}
	}
}

func (m *Memory) Failures(_ context.Context, key string) (int, error) {
	v, ok := m.c.Get(failurePrefix + key)
	if !ok {
		return 0, nil
	}
	n, _ := v.(int)
	return n, nil
}

func (m *Memory) ResetFailures(_ context.Context, key string) error {
	m.c.Delete(failurePrefix + key)
	return nil
}

func (m *Memory) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	m.c.Set(revokedPrefix+jti, true, ttl)
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, ok := m.c.Get(revokedPrefix + jti)
	return ok, nil
}

func (m *Memory) Close() error {
	m.c.Flush()
	return nil
}
