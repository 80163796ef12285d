package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/domain"
)

// responderError traduce los errores de dominio al estado y código HTTP. Lo
// que no es un sentinel de dominio es un 500.
func responderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoEncontrado), errors.Is(err, domain.ErrUsuarioNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicado), errors.Is(err, domain.ErrEmailRegistrado), errors.Is(err, domain.ErrConflicto), errors.Is(err, domain.ErrFolioEnviado), errors.Is(err, domain.ErrTareaCompletada):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrNoAutorizado):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrProhibido), errors.Is(err, domain.ErrPermisoDenegado):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrEntradaInvalida),
		errors.Is(err, domain.ErrClaveReservada),
		errors.Is(err, domain.ErrPuntuacionInvalida),
		errors.Is(err, domain.ErrComentarioRequerido):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrPasoIncompleto), errors.Is(err, domain.ErrPasoInvalido):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_STEP", Message: err.Error()})
	case errors.Is(err, domain.ErrCamaraNoDisponible),
		errors.Is(err, domain.ErrPosicionNoDisponible),
		errors.Is(err, domain.ErrMarcaIncompleta):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EVIDENCE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
