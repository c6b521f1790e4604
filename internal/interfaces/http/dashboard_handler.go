package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/goldfolio-api/internal/application/analytics"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve clientes por estado y boletas por moneda (histórico y mes en curso).
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (clients_by_status, total_clients, receipts_by_currency,
// month_receipts_by_currency, date_label). El alcance es el de la sesión.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetPrincipal(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(summary)
}
