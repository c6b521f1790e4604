package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositReceiptRequest entrada para crear una boleta.
// BranchID solo lo respeta MASTER; el resto queda con la sucursal del usuario.
type DepositReceiptRequest struct {
	ClientName           string          `json:"client_name"`
	ClientID             string          `json:"client_id"`
	Bank                 string          `json:"bank"`
	DepositAmount        decimal.Decimal `json:"deposit_amount"`
	DepositCurrency      string          `json:"deposit_currency"`
	OperationNumber      string          `json:"operation_number"`
	CounterpartyCurrency string          `json:"counterparty_currency"`
	BranchID             string          `json:"branch_id"`
	Notes                string          `json:"notes"`
}

// UpdateDepositReceiptRequest actualización parcial de una boleta.
type UpdateDepositReceiptRequest struct {
	ClientName           *string          `json:"client_name"`
	ClientID             *string          `json:"client_id"`
	Bank                 *string          `json:"bank"`
	DepositAmount        *decimal.Decimal `json:"deposit_amount"`
	DepositCurrency      *string          `json:"deposit_currency"`
	OperationNumber      *string          `json:"operation_number"`
	CounterpartyCurrency *string          `json:"counterparty_currency"`
	Notes                *string          `json:"notes"`
}

// DepositReceiptQuery filtros del listado de boletas.
type DepositReceiptQuery struct {
	Q        string `query:"q"`
	Bank     string `query:"bank"`
	BranchID string `query:"branch_id"` // solo MASTER
}

// DuplicateCheckQuery parámetros de la verificación interactiva.
type DuplicateCheckQuery struct {
	Bank            string `query:"bank"`
	OperationNumber string `query:"operation_number"`
	ExcludeID       string `query:"exclude_id"`
}

// DepositReceiptResponse salida de una boleta.
type DepositReceiptResponse struct {
	ID                   string          `json:"id"`
	ClientName           string          `json:"client_name"`
	ClientID             string          `json:"client_id,omitempty"`
	Bank                 string          `json:"bank"`
	DepositAmount        decimal.Decimal `json:"deposit_amount"`
	DepositCurrency      string          `json:"deposit_currency"`
	OperationNumber      string          `json:"operation_number"`
	CounterpartyCurrency string          `json:"counterparty_currency"`
	BranchID             string          `json:"branch_id"`
	CreatedBy            string          `json:"created_by"`
	CreatedAt            time.Time       `json:"created_at"`
	Notes                string          `json:"notes,omitempty"`
}

// DepositReceiptListResponse lista de boletas.
type DepositReceiptListResponse struct {
	Items []DepositReceiptResponse `json:"items"`
	Total int                      `json:"total"`
}

// DuplicateCheckResponse resultado de la verificación. Warning es el texto para el usuario.
type DuplicateCheckResponse struct {
	IsDuplicate     bool                    `json:"is_duplicate"`
	Warning         string                  `json:"warning,omitempty"`
	ExistingReceipt *DepositReceiptResponse `json:"existing_receipt,omitempty"`
}

// DuplicateOperationResponse cuerpo del 409 DUPLICATE_OPERATION.
type DuplicateOperationResponse struct {
	ErrorResponse
	ExistingReceipt *DepositReceiptResponse `json:"existing_receipt,omitempty"`
}

// BankListResponse bancos distintos para los filtros.
type BankListResponse struct {
	Items []string `json:"items"`
}
