package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/application/usecase"
)

// UbicacionHandler maneja el catálogo de sucursales.
type UbicacionHandler struct {
	uc *usecase.UbicacionUseCase
}

// NewUbicacionHandler construye el handler.
func NewUbicacionHandler(uc *usecase.UbicacionUseCase) *UbicacionHandler {
	return &UbicacionHandler{uc: uc}
}

// List godoc
// @Summary      Listar sucursales
// @Tags         ubicaciones
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/ubicaciones [get]
func (h *UbicacionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Listar()
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar sucursal
// @Tags         ubicaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UbicacionRequest  true  "Nombre"
// @Success      201   {object}  dto.MensajeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ubicaciones [post]
func (h *UbicacionHandler) Create(c *fiber.Ctx) error {
	var in dto.UbicacionRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	if err := h.uc.Crear(in.Nombre); err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MensajeResponse{Mensaje: "sucursal agregada"})
}

// Delete godoc
// @Summary      Quitar sucursal
// @Tags         ubicaciones
// @Security     Bearer
// @Produce      json
// @Param        nombre  path  string  true  "Nombre"
// @Success      200     {object}  dto.MensajeResponse
// @Router       /api/ubicaciones/{nombre} [delete]
func (h *UbicacionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Params("nombre")); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "sucursal eliminada"})
}
