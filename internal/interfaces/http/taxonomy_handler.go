package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/application/usecase"
)

// TaxonomyHandler maneja el árbol de actividades (solo admin para mutar).
type TaxonomyHandler struct {
	uc *usecase.TaxonomyUseCase
}

// NewTaxonomyHandler construye el handler.
func NewTaxonomyHandler(uc *usecase.TaxonomyUseCase) *TaxonomyHandler {
	return &TaxonomyHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías y subactividades (incluye inactivas)
// @Tags         actividades
// @Security     Bearer
// @Produce      json
// @Param        buscar  query  string  false  "Texto a buscar en claves"
// @Param        estado  query  string  false  "activa | inactiva"
// @Success      200     {array}  dto.CategoriaResponse
// @Router       /api/actividades [get]
func (h *TaxonomyHandler) List(c *fiber.Ctx) error {
	var in dto.ActividadFiltroRequest
	if !parseQuery(c, &in) {
		return nil
	}
	return c.JSON(h.uc.Listar(in))
}

// Create godoc
// @Summary      Crear categoría
// @Tags         actividades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoriaRequest  true  "Categoría nueva"
// @Success      201   {object}  dto.MensajeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/actividades [post]
func (h *TaxonomyHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoriaRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	if err := h.uc.CrearCategoria(in.Nombre, in.Sub); err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MensajeResponse{Mensaje: "categoría creada"})
}

// Rename godoc
// @Summary      Renombrar categoría
// @Tags         actividades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        clave  path  string  true  "Clave actual"
// @Param        body   body  dto.RenombrarRequest  true  "Nombre nuevo"
// @Success      200    {object}  dto.MensajeResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/actividades/{clave}/nombre [put]
func (h *TaxonomyHandler) Rename(c *fiber.Ctx) error {
	var in dto.RenombrarRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	if err := h.uc.RenombrarCategoria(c.Params("clave"), in.Nombre); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "categoría renombrada"})
}

// SetActive godoc
// @Summary      Activar o desactivar categoría
// @Tags         actividades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        clave  path  string  true  "Clave de la categoría"
// @Param        body   body  dto.ActivarCategoriaRequest  true  "Bandera"
// @Success      200    {object}  dto.MensajeResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/actividades/{clave}/activo [put]
func (h *TaxonomyHandler) SetActive(c *fiber.Ctx) error {
	var in dto.ActivarCategoriaRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	if err := h.uc.SetActiva(c.Params("clave"), *in.Activo); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "categoría actualizada"})
}

// Delete godoc
// @Summary      Eliminar categoría con sus subactividades
// @Tags         actividades
// @Security     Bearer
// @Produce      json
// @Param        clave  path  string  true  "Clave de la categoría"
// @Success      200    {object}  dto.MensajeResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/actividades/{clave} [delete]
func (h *TaxonomyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.EliminarCategoria(c.Params("clave")); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "categoría eliminada"})
}

// AddSub godoc
// @Summary      Agregar subactividad
// @Tags         actividades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        clave  path  string  true  "Clave de la categoría"
// @Param        body   body  dto.SubactividadRequest  true  "Subactividad nueva"
// @Success      201    {object}  dto.MensajeResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/actividades/{clave}/sub [post]
func (h *TaxonomyHandler) AddSub(c *fiber.Ctx) error {
	var in dto.SubactividadRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	if err := h.uc.AgregarSub(c.Params("clave"), in.Nombre); err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MensajeResponse{Mensaje: "subactividad agregada"})
}

// RenameSub godoc
// @Summary      Renombrar subactividad
// @Tags         actividades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        clave  path  string  true  "Clave de la categoría"
// @Param        sub    path  string  true  "Subactividad actual"
// @Param        body   body  dto.RenombrarRequest  true  "Nombre nuevo"
// @Success      200    {object}  dto.MensajeResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/actividades/{clave}/sub/{sub}/nombre [put]
func (h *TaxonomyHandler) RenameSub(c *fiber.Ctx) error {
	var in dto.RenombrarRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	if err := h.uc.RenombrarSub(c.Params("clave"), c.Params("sub"), in.Nombre); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "subactividad renombrada"})
}

// DeleteSub godoc
// @Summary      Eliminar subactividad
// @Tags         actividades
// @Security     Bearer
// @Produce      json
// @Param        clave  path  string  true  "Clave de la categoría"
// @Param        sub    path  string  true  "Subactividad"
// @Success      200    {object}  dto.MensajeResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/actividades/{clave}/sub/{sub} [delete]
func (h *TaxonomyHandler) DeleteSub(c *fiber.Ctx) error {
	if err := h.uc.EliminarSub(c.Params("clave"), c.Params("sub")); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "subactividad eliminada"})
}
