package memory

import (
	"context"

	"github.com/jhoicas/goldfolio-api/internal/application/ports"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
)

var _ ports.AccountTxRunner = (*TxRunner)(nil)

// TxRunner emula la transacción de cuentas: si fn falla se deshacen sus escrituras de
// credenciales y perfiles.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// RunAccount serializa las operaciones de cuenta y revierte ante error.
func (r *TxRunner) RunAccount(ctx context.Context, fn func(
	credRepo repository.CredentialRepository,
	userRepo repository.UserRepository,
) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	undo := newUndoLog()
	credRepo := &CredentialRepo{s: r.store, undo: undo}
	userRepo := &UserRepo{s: r.store, undo: undo}
	if err := fn(credRepo, userRepo); err != nil {
		r.store.rollback(undo)
		return err
	}
	return nil
}
