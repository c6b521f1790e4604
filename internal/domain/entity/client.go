package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ClientStatus estado comercial de un cliente.
type ClientStatus string

// Estados válidos de Client.
const (
	ClientPending   ClientStatus = "PENDING"
	ClientContacted ClientStatus = "CONTACTED"
	ClientCompleted ClientStatus = "COMPLETED"
	ClientCancelled ClientStatus = "CANCELLED"
)

// ClientStatuses devuelve los estados en el orden del embudo.
func ClientStatuses() []ClientStatus {
	return []ClientStatus{ClientPending, ClientContacted, ClientCompleted, ClientCancelled}
}

// Valid informa si el estado pertenece al conjunto.
func (s ClientStatus) Valid() bool {
	switch s {
	case ClientPending, ClientContacted, ClientCompleted, ClientCancelled:
		return true
	}
	return false
}

// ParseClientStatus convierte un string en ClientStatus.
func ParseClientStatus(s string) (ClientStatus, error) {
	st := ClientStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("estado inválido: %q", s)
	}
	return st, nil
}

// Client prospecto o cliente de una sucursal.
type Client struct {
	ID               string
	FirstName        string
	LastName         string
	Mobile           string
	Landline         string
	Address          string
	Email            string
	InterestType     string
	InvestmentAmount *decimal.Decimal
	BranchID         string
	Status           ClientStatus
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// FullName nombre y apellido.
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
