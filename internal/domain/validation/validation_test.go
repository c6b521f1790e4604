package validation_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClient() *entity.Client {
	return &entity.Client{
		FirstName:    "Ana",
		LastName:     "Pérez",
		Mobile:       "1155550000",
		BranchID:     "b1",
		InterestType: "Lingotes",
	}
}

func TestValidateClient_OK(t *testing.T) {
	assert.NoError(t, validation.ValidateClient(validClient()))
}

func TestValidateClient_AmountInsteadOfInterest(t *testing.T) {
	c := validClient()
	c.InterestType = ""
	amt := decimal.NewFromInt(1000)
	c.InvestmentAmount = &amt
	assert.NoError(t, validation.ValidateClient(c))
}

func TestValidateClient_FieldOrder(t *testing.T) {
	err := validation.ValidateClient(&entity.Client{FirstName: "  "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	fields := domain.ValidationErrors(err)
	require.Len(t, fields, 5)
	assert.Equal(t, validation.MsgFirstNameRequired, fields[0].Message)
	assert.Equal(t, "lastName", fields[1].Field)
	assert.Equal(t, "mobile", fields[2].Field)
	assert.Equal(t, "branchId", fields[3].Field)
	assert.Equal(t, validation.MsgInterestRequired, fields[4].Message)
}

func TestValidateClient_InvalidStatus(t *testing.T) {
	c := validClient()
	c.Status = "ARCHIVED"
	fields := domain.ValidationErrors(validation.ValidateClient(c))
	require.Len(t, fields, 1)
	assert.Equal(t, "status", fields[0].Field)
}

func validReceipt() *entity.DepositReceipt {
	return &entity.DepositReceipt{
		ClientName:           "Juan",
		Bank:                 "Banco Nación",
		DepositAmount:        decimal.NewFromInt(500),
		DepositCurrency:      entity.CurrencyARS,
		OperationNumber:      "12345",
		CounterpartyCurrency: entity.CurrencyUSD,
	}
}

func TestValidateDepositReceipt(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *entity.DepositReceipt)
		field  string
	}{
		{"ok", func(*entity.DepositReceipt) {}, ""},
		{"cliente vacío", func(r *entity.DepositReceipt) { r.ClientName = " " }, "clientName"},
		{"banco vacío", func(r *entity.DepositReceipt) { r.Bank = "" }, "bank"},
		{"monto cero", func(r *entity.DepositReceipt) { r.DepositAmount = decimal.Zero }, "depositAmount"},
		{"monto negativo", func(r *entity.DepositReceipt) { r.DepositAmount = decimal.NewFromInt(-1) }, "depositAmount"},
		{"monto con centavos", func(r *entity.DepositReceipt) { r.DepositAmount = decimal.RequireFromString("10.12") }, ""},
		{"monto con ceros de sobra", func(r *entity.DepositReceipt) { r.DepositAmount = decimal.RequireFromString("10.1200") }, ""},
		{"monto que redondea a cero", func(r *entity.DepositReceipt) { r.DepositAmount = decimal.RequireFromString("0.004") }, "depositAmount"},
		{"monto con tres decimales", func(r *entity.DepositReceipt) { r.DepositAmount = decimal.RequireFromString("10.123") }, "depositAmount"},
		{"monto fuera de rango", func(r *entity.DepositReceipt) { r.DepositAmount = decimal.New(1, 16) }, "depositAmount"},
		{"operación vacía", func(r *entity.DepositReceipt) { r.OperationNumber = "\t" }, "operationNumber"},
		{"moneda inválida", func(r *entity.DepositReceipt) { r.DepositCurrency = "JPY" }, "depositCurrency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReceipt()
			tt.mutate(r)
			err := validation.ValidateDepositReceipt(r)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			fields := domain.ValidationErrors(err)
			require.Len(t, fields, 1)
			assert.Equal(t, tt.field, fields[0].Field)
		})
	}
}

func TestValidateDepositReceipt_MensajesDeMonto(t *testing.T) {
	r := validReceipt()
	r.DepositAmount = decimal.RequireFromString("0.004")
	fields := domain.ValidationErrors(validation.ValidateDepositReceipt(r))
	require.Len(t, fields, 1)
	assert.Equal(t, validation.MsgAmountDecimals, fields[0].Message)

	r.DepositAmount = decimal.RequireFromString("9999999999999999.99")
	assert.NoError(t, validation.ValidateDepositReceipt(r))
}

func TestValidateUser(t *testing.T) {
	assert.NoError(t, validation.ValidateUser(&entity.User{Email: "a@b.com", Username: "ana", Role: entity.RoleUser}))
	fields := domain.ValidationErrors(validation.ValidateUser(&entity.User{Role: "ROOT"}))
	require.Len(t, fields, 3)
	assert.Equal(t, "role", fields[2].Field)
}

func TestValidateBranch(t *testing.T) {
	assert.NoError(t, validation.ValidateBranch(&entity.Branch{Name: "Centro"}))
	assert.ErrorIs(t, validation.ValidateBranch(&entity.Branch{Name: " "}), domain.ErrInvalidInput)
}
