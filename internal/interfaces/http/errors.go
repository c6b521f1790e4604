package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/goldfolio-api/internal/application/dto"
	"github.com/jhoicas/goldfolio-api/internal/application/usecase"
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
)

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// respondError traduce errores de dominio a status + ErrorResponse.
// Lo que no es de dominio se registra y sale como 500 sin detalle interno.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var dup *domain.DuplicateOperationError
	if errors.As(err, &dup) {
		return c.Status(fiber.StatusConflict).JSON(dto.DuplicateOperationResponse{
			ErrorResponse:   dto.ErrorResponse{Code: "DUPLICATE_OPERATION", Message: dup.Error()},
			ExistingReceipt: usecase.ToDepositReceiptResponse(dup.Existing),
		})
	}
	if fields := domain.ValidationErrors(err); len(fields) > 0 {
		out := dto.ErrorResponse{Code: "VALIDATION", Message: fields[0].Message}
		for _, f := range fields {
			out.Fields = append(out.Fields, dto.FieldError{Field: f.Field, Message: f.Message})
		}
		return c.Status(fiber.StatusBadRequest).JSON(out)
	}

	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrWeakPassword):
		status, code = fiber.StatusBadRequest, "WEAK_PASSWORD"
	case errors.Is(err, domain.ErrInvalidEmail):
		status, code = fiber.StatusBadRequest, "INVALID_EMAIL"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, code = fiber.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrTooManyAttempts):
		status, code = fiber.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code = fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	}
	if status == fiber.StatusInternalServerError {
		logger.FromContext(c.UserContext(), log).Error().Err(err).
			Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "error interno del servidor"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
