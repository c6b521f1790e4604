package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
)

var _ repository.DepositReceiptRepository = (*DepositReceiptRepo)(nil)

// DepositReceiptRepo boletas en memoria con la misma unicidad (bank, operation_number) que la tabla.
type DepositReceiptRepo struct {
	s *Store
}

// NewDepositReceiptRepository construye el repo.
func NewDepositReceiptRepository(s *Store) *DepositReceiptRepo { return &DepositReceiptRepo{s: s} }

// conflict requiere s.mu tomado.
func (r *DepositReceiptRepo) conflict(d *entity.DepositReceipt) bool {
	for id, existing := range r.s.receipts {
		if id != d.ID && existing.Bank == d.Bank && existing.OperationNumber == d.OperationNumber {
			return true
		}
	}
	return false
}

func (r *DepositReceiptRepo) Create(_ context.Context, d *entity.DepositReceipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.conflict(d) {
		return domain.ErrDuplicate
	}
	r.s.receipts[d.ID] = *d
	r.s.touch(d.ID)
	return nil
}

func (r *DepositReceiptRepo) GetByID(_ context.Context, id string) (*entity.DepositReceipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.receipts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

// List filtra por igualdad y ordena por created_at descendente.
func (r *DepositReceiptRepo) List(_ context.Context, f repository.DepositReceiptFilter) ([]*entity.DepositReceipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.DepositReceipt, 0)
	for _, d := range r.s.receipts {
		if f.BranchID != "" && d.BranchID != f.BranchID {
			continue
		}
		if f.Bank != "" && d.Bank != f.Bank {
			continue
		}
		d := d
		list = append(list, &d)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return r.s.order[list[i].ID] > r.s.order[list[j].ID]
	})
	return list, nil
}

// FindByBankAndOperation coincidencia exacta, en orden de inserción.
func (r *DepositReceiptRepo) FindByBankAndOperation(_ context.Context, bank, operationNumber string) ([]*entity.DepositReceipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for id, d := range r.s.receipts {
		if d.Bank == bank && d.OperationNumber == operationNumber {
			ids = append(ids, id)
		}
	}
	r.s.byInsertion(ids)
	list := make([]*entity.DepositReceipt, 0, len(ids))
	for _, id := range ids {
		d := r.s.receipts[id]
		list = append(list, &d)
	}
	return list, nil
}

// ListBanks bancos distintos ordenados alfabéticamente.
func (r *DepositReceiptRepo) ListBanks(_ context.Context, branchID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := make(map[string]struct{})
	banks := make([]string, 0)
	for _, d := range r.s.receipts {
		if branchID != "" && d.BranchID != branchID {
			continue
		}
		if _, ok := seen[d.Bank]; ok {
			continue
		}
		seen[d.Bank] = struct{}{}
		banks = append(banks, d.Bank)
	}
	sort.Strings(banks)
	return banks, nil
}

func (r *DepositReceiptRepo) Update(_ context.Context, d *entity.DepositReceipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.receipts[d.ID]; !ok {
		return nil
	}
	if r.conflict(d) {
		return domain.ErrDuplicate
	}
	r.s.receipts[d.ID] = *d
	return nil
}

func (r *DepositReceiptRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.receipts, id)
	return nil
}
