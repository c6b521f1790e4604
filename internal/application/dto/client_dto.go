package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientRequest entrada para crear un cliente. Status vacío = PENDING.
type ClientRequest struct {
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Mobile           string           `json:"mobile"`
	Landline         string           `json:"landline"`
	Address          string           `json:"address"`
	Email            string           `json:"email"`
	InterestType     string           `json:"interest_type"`
	InvestmentAmount *decimal.Decimal `json:"investment_amount"`
	BranchID         string           `json:"branch_id"`
	Status           string           `json:"status"`
}

// UpdateClientRequest actualización parcial; los punteros nil no se tocan.
type UpdateClientRequest struct {
	FirstName        *string          `json:"first_name"`
	LastName         *string          `json:"last_name"`
	Mobile           *string          `json:"mobile"`
	Landline         *string          `json:"landline"`
	Address          *string          `json:"address"`
	Email            *string          `json:"email"`
	InterestType     *string          `json:"interest_type"`
	InvestmentAmount *decimal.Decimal `json:"investment_amount"`
	BranchID         *string          `json:"branch_id"`
	Status           *string          `json:"status"`
}

// UpdateClientStatusRequest cambio rápido de estado.
type UpdateClientStatusRequest struct {
	Status string `json:"status"`
}

// ClientQuery filtros del listado de clientes.
type ClientQuery struct {
	Q        string `query:"q"`
	Status   string `query:"status"`
	BranchID string `query:"branch_id"` // solo MASTER
	Sort     string `query:"sort"`      // last_name | created_at | investment_amount
	Order    string `query:"order"`     // asc | desc
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID               string           `json:"id"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Mobile           string           `json:"mobile"`
	Landline         string           `json:"landline,omitempty"`
	Address          string           `json:"address,omitempty"`
	Email            string           `json:"email,omitempty"`
	InterestType     string           `json:"interest_type,omitempty"`
	InvestmentAmount *decimal.Decimal `json:"investment_amount,omitempty"`
	BranchID         string           `json:"branch_id"`
	Status           string           `json:"status"`
	CreatedBy        string           `json:"created_by"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        *time.Time       `json:"updated_at,omitempty"`
}

// ClientListResponse lista de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Total int              `json:"total"`
}
