package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Todos los valores respetan el alcance del usuario (sucursal o todas para MASTER).
type DashboardSummaryDTO struct {
	// Clientes por estado del embudo (todos los estados presentes, con cero si no hay).
	ClientsByStatus map[string]int `json:"clients_by_status"`
	TotalClients    int            `json:"total_clients"`

	// Boletas agrupadas por moneda de depósito
	ReceiptsByCurrency      []CurrencyTotalDTO `json:"receipts_by_currency"`
	MonthReceiptsByCurrency []CurrencyTotalDTO `json:"month_receipts_by_currency"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// CurrencyTotalDTO total depositado en una moneda.
type CurrencyTotalDTO struct {
	Currency string          `json:"currency"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}
