package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountClientsByStatus cuenta clientes por estado dentro de la sucursal ("" = todas).
func (r *AnalyticsRepo) CountClientsByStatus(ctx context.Context, branchID string) (map[entity.ClientStatus]int, error) {
	stmt := psql.Select("status", "COUNT(*)").From("clients").GroupBy("status")
	if branchID != "" {
		stmt = stmt.Where(sq.Eq{"branch_id": branchID})
	}
	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("clients by status: %w", err)
	}
	defer rows.Close()

	out := make(map[entity.ClientStatus]int)
	for rows.Next() {
		var (
			st entity.ClientStatus
			n  int
		)
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scan clients by status: %w", err)
		}
		out[st] = n
	}
	return out, rows.Err()
}

// SumReceiptsByCurrency agrupa por moneda de depósito las boletas creadas desde since.
//
//	SELECT deposit_currency, COUNT(*), COALESCE(SUM(deposit_amount), 0)
//	FROM deposit_receipts
//	WHERE branch_id = $1 AND created_at >= $2
//	GROUP BY deposit_currency ORDER BY deposit_currency
func (r *AnalyticsRepo) SumReceiptsByCurrency(ctx context.Context, branchID string, since time.Time) ([]repository.CurrencyTotal, error) {
	stmt := psql.Select("deposit_currency", "COUNT(*)", "COALESCE(SUM(deposit_amount), 0)").
		From("deposit_receipts").
		GroupBy("deposit_currency").
		OrderBy("deposit_currency")
	if branchID != "" {
		stmt = stmt.Where(sq.Eq{"branch_id": branchID})
	}
	if !since.IsZero() {
		stmt = stmt.Where(sq.GtOrEq{"created_at": since})
	}
	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("receipts by currency: %w", err)
	}
	defer rows.Close()

	var out []repository.CurrencyTotal
	for rows.Next() {
		var t repository.CurrencyTotal
		if err := rows.Scan(&t.Currency, &t.Count, &t.Total); err != nil {
			return nil, fmt.Errorf("scan receipts by currency: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
