package ports

import (
	"context"
	"time"
)

// SessionStore estado compartido del proveedor de identidad: contadores de login fallido
// y tokens revocados. Las implementaciones deben ser seguras para uso concurrente.
type SessionStore interface {
	// RegisterFailure incrementa el contador de key dentro de la ventana y devuelve el total.
	RegisterFailure(ctx context.Context, key string, window time.Duration) (int, error)
	// Failures devuelve el contador vigente de key (0 si expiró).
	Failures(ctx context.Context, key string) (int, error)
	ResetFailures(ctx context.Context, key string) error

	// Revoke marca un jti como revocado durante ttl (la vida restante del token).
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)

	Close() error
}
