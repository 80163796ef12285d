package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/application/usecase"
)

// UsuarioHandler maneja la administración de cuentas (solo admin).
type UsuarioHandler struct {
	uc *usecase.UserUseCase
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UserUseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc}
}

// List godoc
// @Summary      Listar cuentas
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UsuarioInfo
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Listar()
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cuenta por uid
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        uid  path  string  true  "Uid de la cuenta"
// @Success      200  {object}  dto.UsuarioInfo
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{uid} [get]
func (h *UsuarioHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.Params("uid"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Habilitar o deshabilitar cuenta
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        uid   path  string  true  "Uid de la cuenta"
// @Param        body  body  dto.ActivarUsuarioRequest  true  "Bandera"
// @Success      200   {object}  dto.MensajeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{uid}/activo [put]
func (h *UsuarioHandler) SetActive(c *fiber.Ctx) error {
	var in dto.ActivarUsuarioRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	if err := h.uc.SetActivo(c.Params("uid"), *in.Activo); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "cuenta actualizada"})
}

// AssignRole godoc
// @Summary      Pre-asignar rol a un email (con o sin cuenta)
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AsignarRolRequest  true  "Email y rol"
// @Success      200   {object}  dto.MensajeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/usuarios/roles [post]
func (h *UsuarioHandler) AssignRole(c *fiber.Ctx) error {
	var in dto.AsignarRolRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	if err := h.uc.AsignarRolPendiente(in.Email, in.Rol); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "rol asignado"})
}
