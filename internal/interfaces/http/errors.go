package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-console/internal/application/dto"
	"github.com/jhoicas/stock-console/internal/domain"
)

// writeError traduce los errores de dominio a status + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos incompletos o inválidos", Fields: verrs,
		})
	}

	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNotAuthenticated):
		status, code = fiber.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, domain.ErrNetwork):
		status, code = fiber.StatusServiceUnavailable, "BACKEND_UNREACHABLE"
	case errors.Is(err, domain.ErrServer):
		status, code = fiber.StatusBadGateway, "BACKEND_ERROR"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrRejected):
		status, code = fiber.StatusBadRequest, "REJECTED"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrFormClosed):
		status, code = fiber.StatusConflict, "FORM_CLOSED"
	case errors.Is(err, domain.ErrSubmitInProgress):
		status, code = fiber.StatusConflict, "SUBMIT_IN_PROGRESS"
	case errors.Is(err, domain.ErrSelectorClosed):
		status, code = fiber.StatusConflict, "SELECTOR_CLOSED"
	case errors.Is(err, context.DeadlineExceeded):
		status, code = fiber.StatusGatewayTimeout, "TIMEOUT"
	}

	msg := domain.DetailOf(err)
	if msg == "" {
		msg = err.Error()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
