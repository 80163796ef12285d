package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/heliosapp/helios-api/internal/application/dto"
	appfolio "github.com/heliosapp/helios-api/internal/application/folio"
)

// FolioHandler maneja folios: el asistente de captura, consulta, edición
// administrativa y la ruta de compatibilidad.
type FolioHandler struct {
	uc *appfolio.UseCase
}

// NewFolioHandler construye el handler.
func NewFolioHandler(uc *appfolio.UseCase) *FolioHandler {
	return &FolioHandler{uc: uc}
}

// ────────────────────────── asistente ──────────────────────────

// StartBuilder godoc
// @Summary      Abrir sesión del asistente de folios
// @Tags         folios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BuilderInicioRequest  true  "Información general"
// @Success      201   {object}  dto.BuilderEstadoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/folios/builder [post]
func (h *FolioHandler) StartBuilder(c *fiber.Ctx) error {
	var in dto.BuilderInicioRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	sesion, err := h.uc.Iniciar(GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	out, err := h.uc.Estado(sesion, GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BuilderState godoc
// @Summary      Estado de la sesión del asistente
// @Tags         folios
// @Security     Bearer
// @Produce      json
// @Param        sesion  path  string  true  "Id de sesión"
// @Success      200     {object}  dto.BuilderEstadoResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/folios/builder/{sesion} [get]
func (h *FolioHandler) BuilderState(c *fiber.Ctx) error {
	out, err := h.uc.Estado(c.Params("sesion"), GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Score godoc
// @Summary      Puntuar subactividad del paso actual
// @Tags         folios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sesion  path  string  true  "Id de sesión"
// @Param        body    body  dto.BuilderPuntuacionRequest  true  "Puntuación 1..10"
// @Success      200     {object}  dto.MensajeResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Router       /api/folios/builder/{sesion}/puntuacion [put]
func (h *FolioHandler) Score(c *fiber.Ctx) error {
	var in dto.BuilderPuntuacionRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	if err := h.uc.Puntuar(c.Params("sesion"), GetUserID(c), in); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "puntuación registrada"})
}

// Comment godoc
// @Summary      Comentar subactividad del paso actual
// @Tags         folios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sesion  path  string  true  "Id de sesión"
// @Param        body    body  dto.BuilderComentarioRequest  true  "Comentario"
// @Success      200     {object}  dto.MensajeResponse
// @Router       /api/folios/builder/{sesion}/comentario [put]
func (h *FolioHandler) Comment(c *fiber.Ctx) error {
	var in dto.BuilderComentarioRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	if err := h.uc.Comentar(c.Params("sesion"), GetUserID(c), in); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "comentario registrado"})
}

// AttachPhoto godoc
// @Summary      Adjuntar foto de evidencia a una subactividad
// @Tags         folios
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        sesion     path      string  true  "Id de sesión"
// @Param        actividad  formData  string  true  "Subactividad"
// @Param        foto       formData  file    true  "Imagen"
// @Success      200        {object}  dto.MensajeResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/folios/builder/{sesion}/fotos [post]
func (h *FolioHandler) AttachPhoto(c *fiber.Ctx) error {
	actividad := c.FormValue("actividad")
	foto, err := leerArchivo(c, "foto")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo foto requerido"})
	}
	if err := h.uc.AdjuntarFoto(c.Params("sesion"), GetUserID(c), actividad, foto); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "foto adjuntada"})
}

// Next godoc
// @Summary      Avanzar al paso siguiente
// @Tags         folios
// @Security     Bearer
// @Produce      json
// @Param        sesion  path  string  true  "Id de sesión"
// @Success      200     {object}  dto.BuilderEstadoResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Router       /api/folios/builder/{sesion}/avanzar [post]
func (h *FolioHandler) Next(c *fiber.Ctx) error {
	out, err := h.uc.Avanzar(c.Params("sesion"), GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Back godoc
// @Summary      Volver al paso anterior
// @Tags         folios
// @Security     Bearer
// @Produce      json
// @Param        sesion  path  string  true  "Id de sesión"
// @Success      200     {object}  dto.BuilderEstadoResponse
// @Router       /api/folios/builder/{sesion}/retroceder [post]
func (h *FolioHandler) Back(c *fiber.Ctx) error {
	out, err := h.uc.Retroceder(c.Params("sesion"), GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar el folio
// @Tags         folios
// @Security     Bearer
// @Produce      json
// @Param        sesion  path  string  true  "Id de sesión"
// @Success      201     {object}  dto.FolioResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Router       /api/folios/builder/{sesion}/enviar [post]
func (h *FolioHandler) Submit(c *fiber.Ctx) error {
	f, err := h.uc.Enviar(c.Context(), c.Params("sesion"), GetUserID(c), GetNombre(c))
	if err != nil {
		return responderError(c, err)
	}
	out, err := h.uc.Obtener(f.ID)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Abandon godoc
// @Summary      Descartar la sesión sin enviar
// @Tags         folios
// @Security     Bearer
// @Produce      json
// @Param        sesion  path  string  true  "Id de sesión"
// @Success      200     {object}  dto.MensajeResponse
// @Router       /api/folios/builder/{sesion} [delete]
func (h *FolioHandler) Abandon(c *fiber.Ctx) error {
	if err := h.uc.Abandonar(c.Params("sesion"), GetUserID(c)); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "sesión descartada"})
}

// ────────────────────────── consulta y edición ──────────────────────────

// List godoc
// @Summary      Listar folios con filtros
// @Tags         folios
// @Security     Bearer
// @Produce      json
// @Param        desde     query  string  false  "Fecha mínima YYYY-MM-DD"
// @Param        hasta     query  string  false  "Fecha máxima YYYY-MM-DD"
// @Param        sucursal  query  string  false  "Sucursal"
// @Param        usuario   query  string  false  "Supervisor (nombre o email)"
// @Success      200       {array}  dto.FolioResponse
// @Router       /api/folios [get]
func (h *FolioHandler) List(c *fiber.Ctx) error {
	var in dto.FolioFiltroRequest
	if !parseQuery(c, &in) {
		return nil
	}
	out, err := h.uc.Listar(in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener folio por id
// @Tags         folios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Id del folio"
// @Success      200  {object}  dto.FolioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/folios/{id} [get]
func (h *FolioHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Aggregate godoc
// @Summary      Folio con promedios por categoría
// @Tags         folios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Id del folio"
// @Success      200  {object}  dto.FolioAgregadoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/folios/{id}/agregado [get]
func (h *FolioHandler) Aggregate(c *fiber.Ctx) error {
	out, err := h.uc.Agregado(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas del tablero sobre folios filtrados
// @Tags         folios
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  folio.Estadisticas
// @Router       /api/folios/estadisticas [get]
func (h *FolioHandler) Stats(c *fiber.Ctx) error {
	var in dto.FolioFiltroRequest
	if !parseQuery(c, &in) {
		return nil
	}
	out, err := h.uc.Estadisticas(in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar campos generales de un folio (admin)
// @Tags         folios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Id del folio"
// @Param        body  body  dto.FolioEdicionRequest  true  "Campos a sobrescribir"
// @Success      200   {object}  dto.FolioResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/folios/{id} [put]
func (h *FolioHandler) Update(c *fiber.Ctx) error {
	var in dto.FolioEdicionRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	out, err := h.uc.Editar(c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar folio (admin)
// @Tags         folios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Id del folio"
// @Success      200  {object}  dto.MensajeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/folios/{id} [delete]
func (h *FolioHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "folio eliminado"})
}

// ────────────────────────── compatibilidad ──────────────────────────

// CreateLegacy godoc
// @Summary      Crear folio directo (clientes antiguos)
// @Tags         folios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FolioLegadoRequest  true  "Datos generales"
// @Success      201   {object}  dto.FolioResponse
// @Router       /api/folios [post]
func (h *FolioHandler) CreateLegacy(c *fiber.Ctx) error {
	var in dto.FolioLegadoRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	f, err := h.uc.CrearLegado(in)
	if err != nil {
		return responderError(c, err)
	}
	out, err := h.uc.Obtener(f.ID)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SaveActivityLegacy godoc
// @Summary      Escribir una hoja de actividad suelta (clientes antiguos)
// @Tags         folios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Id del folio"
// @Param        body  body  dto.ActividadLegadoRequest  true  "Hoja de actividad"
// @Success      200   {object}  dto.MensajeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/folios/{id}/actividades [put]
func (h *FolioHandler) SaveActivityLegacy(c *fiber.Ctx) error {
	var in dto.ActividadLegadoRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	if err := h.uc.GuardarActividadLegado(c.Params("id"), in); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "actividad guardada"})
}

// leerArchivo lee un archivo multipart completo a memoria.
func leerArchivo(c *fiber.Ctx, campo string) ([]byte, error) {
	fh, err := c.FormFile(campo)
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
