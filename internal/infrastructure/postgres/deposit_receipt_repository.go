package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
)

var _ repository.DepositReceiptRepository = (*DepositReceiptRepo)(nil)

var receiptColumns = []string{
	"id", "client_name", "client_id", "bank", "deposit_amount", "deposit_currency",
	"operation_number", "counterparty_currency", "branch_id", "created_by", "created_at", "notes",
}

// DepositReceiptRepo boletas de depósito. El índice único (bank, operation_number)
// es la última barrera contra dos altas concurrentes del mismo número.
type DepositReceiptRepo struct {
	q Querier
}

// NewDepositReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDepositReceiptRepository(q Querier) *DepositReceiptRepo {
	return &DepositReceiptRepo{q: q}
}

func scanReceipt(row pgxScanner) (*entity.DepositReceipt, error) {
	var d entity.DepositReceipt
	err := row.Scan(
		&d.ID, &d.ClientName, &d.ClientID, &d.Bank, &d.DepositAmount, &d.DepositCurrency,
		&d.OperationNumber, &d.CounterpartyCurrency, &d.BranchID, &d.CreatedBy, &d.CreatedAt, &d.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste una boleta. domain.ErrDuplicate si (bank, operation_number) ya existe.
func (r *DepositReceiptRepo) Create(ctx context.Context, d *entity.DepositReceipt) error {
	sqlQuery, args, err := psql.Insert("deposit_receipts").Columns(receiptColumns...).Values(
		d.ID, d.ClientName, d.ClientID, d.Bank, d.DepositAmount, d.DepositCurrency,
		d.OperationNumber, d.CounterpartyCurrency, d.BranchID, d.CreatedBy, d.CreatedAt, d.Notes,
	).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sqlQuery, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert deposit receipt: %w", err)
	}
	return nil
}

// GetByID obtiene una boleta por ID.
func (r *DepositReceiptRepo) GetByID(ctx context.Context, id string) (*entity.DepositReceipt, error) {
	sqlQuery, args, err := psql.Select(receiptColumns...).From("deposit_receipts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	d, err := scanReceipt(r.q.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deposit receipt: %w", err)
	}
	return d, nil
}

// List boletas filtradas, más recientes primero.
func (r *DepositReceiptRepo) List(ctx context.Context, f repository.DepositReceiptFilter) ([]*entity.DepositReceipt, error) {
	stmt := psql.Select(receiptColumns...).From("deposit_receipts").OrderBy("created_at DESC", "id")
	if f.BranchID != "" {
		stmt = stmt.Where(sq.Eq{"branch_id": f.BranchID})
	}
	if f.Bank != "" {
		stmt = stmt.Where(sq.Eq{"bank": f.Bank})
	}
	list, err := queryAll(ctx, r.q, stmt, scanReceipt)
	if err != nil {
		return nil, fmt.Errorf("list deposit receipts: %w", err)
	}
	return list, nil
}

// FindByBankAndOperation coincidencia exacta en todas las sucursales, en orden de alta.
func (r *DepositReceiptRepo) FindByBankAndOperation(ctx context.Context, bank, operationNumber string) ([]*entity.DepositReceipt, error) {
	stmt := psql.Select(receiptColumns...).From("deposit_receipts").
		Where(sq.Eq{"bank": bank, "operation_number": operationNumber}).
		OrderBy("created_at", "id")
	list, err := queryAll(ctx, r.q, stmt, scanReceipt)
	if err != nil {
		return nil, fmt.Errorf("find deposit receipt by operation: %w", err)
	}
	return list, nil
}

// ListBanks bancos distintos, alfabético.
func (r *DepositReceiptRepo) ListBanks(ctx context.Context, branchID string) ([]string, error) {
	stmt := psql.Select("DISTINCT bank").From("deposit_receipts").OrderBy("bank")
	if branchID != "" {
		stmt = stmt.Where(sq.Eq{"branch_id": branchID})
	}
	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	defer rows.Close()
	banks := []string{}
	for rows.Next() {
		var bank string
		if err := rows.Scan(&bank); err != nil {
			return nil, fmt.Errorf("scan bank: %w", err)
		}
		banks = append(banks, bank)
	}
	return banks, rows.Err()
}

// Update reemplaza los campos editables. domain.ErrDuplicate ante colisión del índice.
func (r *DepositReceiptRepo) Update(ctx context.Context, d *entity.DepositReceipt) error {
	sqlQuery, args, err := psql.Update("deposit_receipts").SetMap(map[string]any{
		"client_name":           d.ClientName,
		"client_id":             d.ClientID,
		"bank":                  d.Bank,
		"deposit_amount":        d.DepositAmount,
		"deposit_currency":      d.DepositCurrency,
		"operation_number":      d.OperationNumber,
		"counterparty_currency": d.CounterpartyCurrency,
		"notes":                 d.Notes,
	}).Where(sq.Eq{"id": d.ID}).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sqlQuery, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update deposit receipt: %w", err)
	}
	return nil
}

// Delete elimina una boleta por ID.
func (r *DepositReceiptRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM deposit_receipts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete deposit receipt: %w", err)
	}
	return nil
}
