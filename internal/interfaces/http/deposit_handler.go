package http

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/goldfolio-api/internal/application/dto"
	"github.com/jhoicas/goldfolio-api/internal/application/usecase"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
)

// DepositHandler boletas de depósito y verificación de número de operación.
type DepositHandler struct {
	uc  *usecase.DepositReceiptUseCase
	log *logger.Logger
}

// NewDepositHandler construye el handler.
func NewDepositHandler(uc *usecase.DepositReceiptUseCase, log *logger.Logger) *DepositHandler {
	return &DepositHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar boleta de depósito
// @Description  Rechaza con 409 DUPLICATE_OPERATION si el banco ya tiene ese número de operación.
// @Tags         deposits
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DepositReceiptRequest  true  "datos de la boleta"
// @Success      201   {object}  dto.DepositReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.DuplicateOperationResponse
// @Router       /api/deposit-receipts [post]
func (h *DepositHandler) Create(c *fiber.Ctx) error {
	var in dto.DepositReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CheckDuplicate godoc
// @Summary      Verificar número de operación (aviso en el formulario)
// @Tags         deposits
// @Security     BearerAuth
// @Produce      json
// @Param        bank              query  string  true   "banco"
// @Param        operation_number  query  string  true   "número de operación"
// @Param        exclude_id        query  string  false  "boleta en edición"
// @Success      200  {object}  dto.DuplicateCheckResponse
// @Router       /api/deposit-receipts/duplicate-check [get]
func (h *DepositHandler) CheckDuplicate(c *fiber.Ctx) error {
	var q dto.DuplicateCheckQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.CheckDuplicateFor(c.Context(), GetPrincipal(c), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List GET /api/deposit-receipts?q=&bank=&branch_id=
func (h *DepositHandler) List(c *fiber.Ctx) error {
	var q dto.DepositReceiptQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), GetPrincipal(c), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Banks GET /api/deposit-receipts/banks
func (h *DepositHandler) Banks(c *fiber.Ctx) error {
	out, err := h.uc.Banks(c.Context(), GetPrincipal(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListByBank GET /api/deposit-receipts/banks/:bank
// El nombre llega codificado en el path ("Banco%20Naci%C3%B3n").
func (h *DepositHandler) ListByBank(c *fiber.Ctx) error {
	bank, err := url.PathUnescape(c.Params("bank"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PATH", Message: "banco inválido"})
	}
	out, err := h.uc.ListByBank(c.Context(), GetPrincipal(c), bank)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/deposit-receipts/:id
func (h *DepositHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update PUT /api/deposit-receipts/:id
func (h *DepositHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDepositReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/deposit-receipts/:id
func (h *DepositHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.Context(), GetPrincipal(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DeletedResponse{ID: id, Deleted: true})
}

// PDF godoc
// @Summary      Comprobante PDF de la boleta
// @Tags         deposits
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id  path  string  true  "id de la boleta"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deposit-receipts/{id}/pdf [get]
func (h *DepositHandler) PDF(c *fiber.Ctx) error {
	out, filename, err := h.uc.PDF(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(out)
}
