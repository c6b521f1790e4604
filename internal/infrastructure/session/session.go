package session

import (
	"context"
	"fmt"

	"github.com/jhoicas/goldfolio-api/internal/application/ports"
	"github.com/jhoicas/goldfolio-api/pkg/config"
)

// New elige el backend según SESSION_STORE.
func New(ctx context.Context, cfg config.SessionConfig) (ports.SessionStore, error) {
	switch cfg.Store {
	case config.SessionStoreRedis:
		return NewRedis(ctx, cfg.RedisURL)
	case config.SessionStoreMemory, "":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("session: store desconocido %q", cfg.Store)
	}
}
