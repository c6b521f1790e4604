// Package analytics contiene el caso de uso del resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/application/access"
	"github.com/jhoicas/goldfolio-api/internal/application/dto"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// DashboardUseCase resumen de clientes y boletas dentro del alcance del usuario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres llamadas en paralelo:
//  1. CountClientsByStatus        → ClientsByStatus + TotalClients
//  2. SumReceiptsByCurrency(todo) → ReceiptsByCurrency
//  3. SumReceiptsByCurrency(mes)  → MonthReceiptsByCurrency
func (uc *DashboardUseCase) GetSummary(ctx context.Context, p access.Principal) (*dto.DashboardSummaryDTO, error) {
	// el mes se corta en UTC, igual que created_at
	now := uc.now().UTC()
	out := &dto.DashboardSummaryDTO{
		ClientsByStatus:         emptyStatusCounts(),
		ReceiptsByCurrency:      []dto.CurrencyTotalDTO{},
		MonthReceiptsByCurrency: []dto.CurrencyTotalDTO{},
		DateLabel:               monthLabel(now),
	}
	scope := p.Scope()
	if scope.Empty() {
		return out, nil
	}
	branchID := scope.Filter()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		counts         map[entity.ClientStatus]int
		all, monthOnly []repository.CurrencyTotal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if counts, err = uc.analyticsRepo.CountClientsByStatus(gctx, branchID); err != nil {
			return fmt.Errorf("dashboard: clientes por estado: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if all, err = uc.analyticsRepo.SumReceiptsByCurrency(gctx, branchID, time.Time{}); err != nil {
			return fmt.Errorf("dashboard: boletas por moneda: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if monthOnly, err = uc.analyticsRepo.SumReceiptsByCurrency(gctx, branchID, monthStart); err != nil {
			return fmt.Errorf("dashboard: boletas del mes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for st, n := range counts {
		out.ClientsByStatus[string(st)] = n
		out.TotalClients += n
	}
	out.ReceiptsByCurrency = toCurrencyDTOs(all)
	out.MonthReceiptsByCurrency = toCurrencyDTOs(monthOnly)
	return out, nil
}

func emptyStatusCounts() map[string]int {
	m := make(map[string]int, len(entity.ClientStatuses()))
	for _, st := range entity.ClientStatuses() {
		m[string(st)] = 0
	}
	return m
}

func toCurrencyDTOs(in []repository.CurrencyTotal) []dto.CurrencyTotalDTO {
	out := make([]dto.CurrencyTotalDTO, 0, len(in))
	for _, t := range in {
		out = append(out, dto.CurrencyTotalDTO{
			Currency: string(t.Currency),
			Count:    t.Count,
			Total:    t.Total.Round(2),
		})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
