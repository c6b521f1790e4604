// Package validation contiene las reglas de forma de las entidades antes de persistir.
// Los errores de campo se acumulan con errors.Join en el orden del formulario,
// de modo que el primero es el que ve el usuario.
package validation

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
)

// maxAmount tope de NUMERIC(18,2): 16 dígitos enteros.
var maxAmount = decimal.New(1, 16)

// Mensajes de validación mostrados al usuario.
const (
	MsgFirstNameRequired  = "El nombre es requerido"
	MsgLastNameRequired   = "El apellido es requerido"
	MsgMobileRequired     = "El celular es requerido"
	MsgBranchRequired     = "Debe seleccionar una sucursal"
	MsgInterestRequired   = "Debe especificar qué busca o el monto a invertir"
	MsgStatusInvalid      = "El estado del cliente no es válido"
	MsgClientNameRequired = "El nombre del cliente es requerido."
	MsgBankRequired       = "El banco es requerido."
	MsgAmountPositive     = "El monto debe ser mayor a 0."
	MsgAmountDecimals     = "El monto admite hasta 2 decimales."
	MsgAmountTooLarge     = "El monto excede el máximo permitido."
	MsgOperationRequired  = "El número de operación es requerido."
	MsgCurrencyInvalid    = "La moneda no es válida."
	MsgBranchNameRequired = "El nombre de la sucursal es requerido"
	MsgEmailRequired      = "El email es requerido"
	MsgUsernameRequired   = "El nombre de usuario es requerido"
	MsgRoleInvalid        = "El rol no es válido"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ValidateClient exige nombre, apellido, celular, sucursal y al menos uno de
// tipo de interés o monto a invertir.
func ValidateClient(c *entity.Client) error {
	if c == nil {
		return domain.NewValidationError("client", "cliente nulo")
	}
	var errs []error
	if blank(c.FirstName) {
		errs = append(errs, domain.NewValidationError("firstName", MsgFirstNameRequired))
	}
	if blank(c.LastName) {
		errs = append(errs, domain.NewValidationError("lastName", MsgLastNameRequired))
	}
	if blank(c.Mobile) {
		errs = append(errs, domain.NewValidationError("mobile", MsgMobileRequired))
	}
	if blank(c.BranchID) {
		errs = append(errs, domain.NewValidationError("branchId", MsgBranchRequired))
	}
	if blank(c.InterestType) && c.InvestmentAmount == nil {
		errs = append(errs, domain.NewValidationError("interestType", MsgInterestRequired))
	}
	if c.Status != "" && !c.Status.Valid() {
		errs = append(errs, domain.NewValidationError("status", MsgStatusInvalid))
	}
	return errors.Join(errs...)
}

// ValidateDepositReceipt exige nombre de cliente, banco, monto > 0 y número de operación.
func ValidateDepositReceipt(r *entity.DepositReceipt) error {
	if r == nil {
		return domain.NewValidationError("receipt", "boleta nula")
	}
	var errs []error
	if blank(r.ClientName) {
		errs = append(errs, domain.NewValidationError("clientName", MsgClientNameRequired))
	}
	if blank(r.Bank) {
		errs = append(errs, domain.NewValidationError("bank", MsgBankRequired))
	}
	switch amt := r.DepositAmount; {
	case !amt.IsPositive():
		errs = append(errs, domain.NewValidationError("depositAmount", MsgAmountPositive))
	case !amt.Round(2).Equal(amt):
		errs = append(errs, domain.NewValidationError("depositAmount", MsgAmountDecimals))
	case amt.GreaterThanOrEqual(maxAmount):
		errs = append(errs, domain.NewValidationError("depositAmount", MsgAmountTooLarge))
	}
	if blank(r.OperationNumber) {
		errs = append(errs, domain.NewValidationError("operationNumber", MsgOperationRequired))
	}
	if !r.DepositCurrency.Valid() {
		errs = append(errs, domain.NewValidationError("depositCurrency", MsgCurrencyInvalid))
	}
	if !r.CounterpartyCurrency.Valid() {
		errs = append(errs, domain.NewValidationError("counterpartyCurrency", MsgCurrencyInvalid))
	}
	return errors.Join(errs...)
}

// ValidateBranch exige nombre.
func ValidateBranch(b *entity.Branch) error {
	if b == nil || blank(b.Name) {
		return domain.NewValidationError("name", MsgBranchNameRequired)
	}
	return nil
}

// ValidateUser exige email, username y un rol del conjunto.
// USER sin sucursal no se rechaza; el caso de uso lo registra en el log.
func ValidateUser(u *entity.User) error {
	if u == nil {
		return domain.NewValidationError("user", "usuario nulo")
	}
	var errs []error
	if blank(u.Email) {
		errs = append(errs, domain.NewValidationError("email", MsgEmailRequired))
	}
	if blank(u.Username) {
		errs = append(errs, domain.NewValidationError("username", MsgUsernameRequired))
	}
	if !u.Role.Valid() {
		errs = append(errs, domain.NewValidationError("role", MsgRoleInvalid))
	}
	return errors.Join(errs...)
}
