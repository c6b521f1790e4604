package repository

import (
	"context"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CurrencyTotal resultado crudo de la suma de boletas por moneda de depósito.
type CurrencyTotal struct {
	Currency entity.Currency
	Count    int
	Total    decimal.Decimal
}

// AnalyticsRepository consultas de lectura para el dashboard.
// branchID vacío = todas las sucursales (alcance MASTER).
type AnalyticsRepository interface {
	// CountClientsByStatus devuelve la cantidad de clientes por estado; los estados sin clientes no aparecen.
	CountClientsByStatus(ctx context.Context, branchID string) (map[entity.ClientStatus]int, error)

	// SumReceiptsByCurrency agrupa las boletas creadas desde `since` (zero = sin límite).
	SumReceiptsByCurrency(ctx context.Context, branchID string, since time.Time) ([]CurrencyTotal, error)
}
