package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/goldfolio-api/internal/application/dto"
	"github.com/jhoicas/goldfolio-api/internal/application/usecase"
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nacionReq() dto.DepositReceiptRequest {
	return dto.DepositReceiptRequest{
		ClientName:           "Juan Pérez",
		Bank:                 "Banco Nación",
		DepositAmount:        decimal.NewFromInt(1000),
		DepositCurrency:      "ARS",
		OperationNumber:      "12345",
		CounterpartyCurrency: "USD",
	}
}

func listAll(t *testing.T, f *fixture) []dto.DepositReceiptResponse {
	t.Helper()
	list, err := f.receipts.List(ctx, master, dto.DepositReceiptQuery{})
	require.NoError(t, err)
	return list.Items
}

func TestDeposit_BancoNacionScenario(t *testing.T) {
	f := newFixture(t)

	r, err := f.receipts.Create(ctx, userB1, nacionReq())
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "b1", r.BranchID)
	assert.Equal(t, userB1.UserID, r.CreatedBy)

	_, err = f.receipts.Create(ctx, userB1, nacionReq())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	var dup *domain.DuplicateOperationError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "Banco Nación", dup.Bank)
	assert.Equal(t, "12345", dup.OperationNumber)
	assert.Equal(t, "Juan Pérez", dup.ExistingClient)
	assert.Equal(t, r.ID, dup.ExistingID)
	require.NotNil(t, dup.Existing)
	assert.Contains(t, dup.Error(), "ALERTA DE FRAUDE")
	assert.Contains(t, dup.Error(), "Juan Pérez")

	assert.Len(t, listAll(t, f), 1)
}

func TestDeposit_CheckDuplicate(t *testing.T) {
	f := newFixture(t)
	r, err := f.receipts.Create(ctx, userB1, nacionReq())
	require.NoError(t, err)

	res, err := f.receipts.CheckDuplicate(ctx, "Banco Nación", "12345", "")
	require.NoError(t, err)
	assert.True(t, res.IsDuplicate)
	assert.Equal(t, r.ID, res.Existing.ID)

	excluded, err := f.receipts.CheckDuplicate(ctx, "Banco Nación", "12345", r.ID)
	require.NoError(t, err)
	assert.False(t, excluded.IsDuplicate)
	assert.Nil(t, excluded.Existing)

	// coincidencia exacta, sensible a mayúsculas
	other, err := f.receipts.CheckDuplicate(ctx, "banco nación", "12345", "")
	require.NoError(t, err)
	assert.False(t, other.IsDuplicate)

	otherBank, err := f.receipts.CheckDuplicate(ctx, "Banco Galicia", "12345", "")
	require.NoError(t, err)
	assert.False(t, otherBank.IsDuplicate)
}

func TestDeposit_SameOperationOtherBankAllowed(t *testing.T) {
	f := newFixture(t)
	_, err := f.receipts.Create(ctx, userB1, nacionReq())
	require.NoError(t, err)

	req := nacionReq()
	req.Bank = "Banco Galicia"
	_, err = f.receipts.Create(ctx, userB1, req)
	require.NoError(t, err)
	assert.Len(t, listAll(t, f), 2)
}

func TestDeposit_CheckDuplicateForHidesOutOfScope(t *testing.T) {
	f := newFixture(t)
	_, err := f.receipts.Create(ctx, userB1, nacionReq())
	require.NoError(t, err)

	q := dto.DuplicateCheckQuery{Bank: "Banco Nación", OperationNumber: "12345"}
	own, err := f.receipts.CheckDuplicateFor(ctx, userB1, q)
	require.NoError(t, err)
	assert.True(t, own.IsDuplicate)
	assert.Contains(t, own.Warning, "Juan Pérez")
	require.NotNil(t, own.ExistingReceipt)

	foreign, err := f.receipts.CheckDuplicateFor(ctx, userB2, q)
	require.NoError(t, err)
	assert.True(t, foreign.IsDuplicate)
	assert.NotEmpty(t, foreign.Warning)
	assert.Nil(t, foreign.ExistingReceipt)

	// el duplicado bloquea también entre sucursales
	_, err = f.receipts.Create(ctx, userB2, nacionReq())
	var dup *domain.DuplicateOperationError
	require.True(t, errors.As(err, &dup))
	assert.Nil(t, dup.Existing)

	empty, err := f.receipts.CheckDuplicateFor(ctx, userB1, dto.DuplicateCheckQuery{Bank: "Banco Nación"})
	require.NoError(t, err)
	assert.False(t, empty.IsDuplicate)
}

func TestDeposit_UpdateUnchangedDoesNotFlagItself(t *testing.T) {
	f := newFixture(t)
	r, err := f.receipts.Create(ctx, userB1, nacionReq())
	require.NoError(t, err)

	notes := "cliente frecuente"
	bank, op := "Banco Nación", "12345"
	upd, err := f.receipts.Update(ctx, userB1, r.ID, dto.UpdateDepositReceiptRequest{
		Notes: &notes, Bank: &bank, OperationNumber: &op,
	})
	require.NoError(t, err)
	assert.Equal(t, "cliente frecuente", upd.Notes)
	assert.Equal(t, r.CreatedAt, upd.CreatedAt)
}

func TestDeposit_UpdateIntoCollisionRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.receipts.Create(ctx, userB1, nacionReq())
	require.NoError(t, err)

	req := nacionReq()
	req.OperationNumber = "99999"
	second, err := f.receipts.Create(ctx, userB1, req)
	require.NoError(t, err)

	op := "12345"
	_, err = f.receipts.Update(ctx, userB1, second.ID, dto.UpdateDepositReceiptRequest{OperationNumber: &op})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := f.receipts.GetByID(ctx, userB1, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "99999", got.OperationNumber)
}

func TestDeposit_Validation(t *testing.T) {
	f := newFixture(t)
	req := nacionReq()
	req.DepositAmount = decimal.Zero
	req.ClientName = "  "
	_, err := f.receipts.Create(ctx, userB1, req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	fields := domain.ValidationErrors(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "clientName", fields[0].Field)
	assert.Equal(t, "depositAmount", fields[1].Field)
	assert.Empty(t, listAll(t, f))
}

func TestDeposit_BranchStamping(t *testing.T) {
	f := newFixture(t)
	req := nacionReq()
	req.BranchID = "b9"
	r, err := f.receipts.Create(ctx, adminB1, req)
	require.NoError(t, err)
	assert.Equal(t, "b1", r.BranchID)

	req.OperationNumber = "777"
	m, err := f.receipts.Create(ctx, master, req)
	require.NoError(t, err)
	assert.Equal(t, "b9", m.BranchID)
}

func TestDeposit_ListScopeSearchAndBanks(t *testing.T) {
	f := newFixture(t)
	_, err := f.receipts.Create(ctx, userB1, nacionReq())
	require.NoError(t, err)
	req := nacionReq()
	req.Bank, req.ClientName, req.OperationNumber = "Banco Galicia", "María Gómez", "555"
	_, err = f.receipts.Create(ctx, userB2, req)
	require.NoError(t, err)

	b1, err := f.receipts.List(ctx, userB1, dto.DepositReceiptQuery{})
	require.NoError(t, err)
	require.Len(t, b1.Items, 1)
	assert.Equal(t, "Banco Nación", b1.Items[0].Bank)

	search, err := f.receipts.List(ctx, master, dto.DepositReceiptQuery{Q: "gomez"})
	require.NoError(t, err)
	require.Len(t, search.Items, 1)
	assert.Equal(t, "555", search.Items[0].OperationNumber)

	byBank, err := f.receipts.ListByBank(ctx, master, "Banco Galicia")
	require.NoError(t, err)
	assert.Len(t, byBank.Items, 1)

	banks, err := f.receipts.Banks(ctx, master)
	require.NoError(t, err)
	assert.Equal(t, []string{"Banco Galicia", "Banco Nación"}, banks.Items)

	own, err := f.receipts.Banks(ctx, userB2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Banco Galicia"}, own.Items)

	none, err := f.receipts.List(ctx, orphan, dto.DepositReceiptQuery{})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
}

func TestDeposit_OutOfScopeIsNotFound(t *testing.T) {
	f := newFixture(t)
	r, err := f.receipts.Create(ctx, userB1, nacionReq())
	require.NoError(t, err)

	_, err = f.receipts.GetByID(ctx, userB2, r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	notes := "x"
	_, err = f.receipts.Update(ctx, userB2, r.ID, dto.UpdateDepositReceiptRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.receipts.Delete(ctx, userB2, r.ID), domain.ErrNotFound)

	require.NoError(t, f.receipts.Delete(ctx, userB1, r.ID))
	assert.Empty(t, listAll(t, f))
}

// blindRepo simula la carrera: la verificación previa no ve la boleta concurrente.
type blindRepo struct {
	*memory.DepositReceiptRepo
}

func (blindRepo) FindByBankAndOperation(context.Context, string, string) ([]*entity.DepositReceipt, error) {
	return nil, nil
}

func TestDeposit_UniqueIndexClosesRace(t *testing.T) {
	f := newFixture(t)
	_, err := f.receipts.Create(ctx, userB1, nacionReq())
	require.NoError(t, err)

	racy := usecase.NewDepositReceiptUseCase(
		blindRepo{memory.NewDepositReceiptRepository(f.store)},
		memory.NewBranchRepository(f.store),
		memory.NewUserRepository(f.store),
		nil, nil, nil,
	)
	_, err = racy.Create(ctx, userB1, nacionReq())
	var dup *domain.DuplicateOperationError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "12345", dup.OperationNumber)
	assert.Len(t, listAll(t, f), 1)
}
