package repository

import (
	"context"

	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
)

// DepositReceiptFilter filtros de igualdad para el listado de boletas.
type DepositReceiptFilter struct {
	BranchID string
	Bank     string
}

// DepositReceiptRepository define el puerto de persistencia para DepositReceipt.
// Create y Update devuelven domain.ErrDuplicate ante violación de (bank, operation_number).
type DepositReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.DepositReceipt) error
	GetByID(ctx context.Context, id string) (*entity.DepositReceipt, error)
	List(ctx context.Context, filter DepositReceiptFilter) ([]*entity.DepositReceipt, error)
	// FindByBankAndOperation coincidencia exacta; orden de inserción.
	FindByBankAndOperation(ctx context.Context, bank, operationNumber string) ([]*entity.DepositReceipt, error)
	ListBanks(ctx context.Context, branchID string) ([]string, error)
	Update(ctx context.Context, receipt *entity.DepositReceipt) error
	Delete(ctx context.Context, id string) error
}
