package ports

import (
	"context"

	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
)

// AccountTxRunner ejecuta fn en una transacción con los repos de credenciales y perfiles.
// Si fn devuelve error, no se persiste nada.
type AccountTxRunner interface {
	RunAccount(ctx context.Context, fn func(
		credRepo repository.CredentialRepository,
		userRepo repository.UserRepository,
	) error) error
}
