package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-servicios/internal/application/admin"
	"github.com/jhoicas/catalogo-servicios/internal/application/dto"
	"github.com/jhoicas/catalogo-servicios/internal/domain"
)

// statusFor traduce un error a estado HTTP y código. Los admin.Fault mandan
// sobre el error de dominio que envuelven.
func statusFor(err error) (int, string) {
	if errors.Is(err, domain.ErrOperationInProgress) {
		return fiber.StatusConflict, "OPERATION_IN_PROGRESS"
	}
	switch admin.KindOf(err) {
	case admin.FaultValidation:
		return fiber.StatusBadRequest, "VALIDATION"
	case admin.FaultNotFound:
		return fiber.StatusNotFound, "NOT_FOUND"
	case admin.FaultBackend:
		return fiber.StatusUnprocessableEntity, "BACKEND_REJECTED"
	case admin.FaultUnexpected:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return fiber.StatusNotFound, "SESSION_NOT_FOUND"
	case errors.Is(err, domain.ErrCategoriaConServicio), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// messageFor es el texto que ve el usuario: el del fallo sin el prefijo de la
// operación, o el genérico si el fallo fue inesperado.
func messageFor(err error) string {
	var f *admin.Fault
	switch {
	case errors.As(err, &f) && f.Kind == admin.FaultUnexpected:
		return admin.MsgUnexpected
	case f != nil:
		return f.Err.Error()
	}
	if status, _ := statusFor(err); status == fiber.StatusInternalServerError {
		return admin.MsgUnexpected
	}
	return err.Error()
}

// writeError responde con dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: messageFor(err)})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
