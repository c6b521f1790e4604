package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Currency moneda de depósito o contraparte.
type Currency string

// Monedas soportadas.
const (
	CurrencyUSD   Currency = "USD"
	CurrencyEUR   Currency = "EUR"
	CurrencyARS   Currency = "ARS"
	CurrencyBRL   Currency = "BRL"
	CurrencyOther Currency = "OTHER"
)

// Currencies devuelve las monedas soportadas.
func Currencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyEUR, CurrencyARS, CurrencyBRL, CurrencyOther}
}

// Valid informa si la moneda pertenece al conjunto.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyARS, CurrencyBRL, CurrencyOther:
		return true
	}
	return false
}

// ParseCurrency convierte un string en Currency.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(s)
	if !c.Valid() {
		return "", fmt.Errorf("moneda inválida: %q", s)
	}
	return c, nil
}

// DepositReceipt boleta de depósito en efectivo y el cambio de moneda que financia.
// (Bank, OperationNumber) es único: coincidencia exacta, sensible a mayúsculas.
type DepositReceipt struct {
	ID                   string
	ClientName           string
	ClientID             string // opcional
	Bank                 string
	DepositAmount        decimal.Decimal
	DepositCurrency      Currency
	OperationNumber      string
	CounterpartyCurrency Currency
	BranchID             string
	CreatedBy            string
	CreatedAt            time.Time
	Notes                string
}
