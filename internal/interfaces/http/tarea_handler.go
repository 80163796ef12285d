package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/application/usecase"
)

// TareaHandler maneja el ciclo de vida de tareas.
type TareaHandler struct {
	uc *usecase.TaskUseCase
}

// NewTareaHandler construye el handler.
func NewTareaHandler(uc *usecase.TaskUseCase) *TareaHandler {
	return &TareaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tarea
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TareaRequest  true  "Datos de la tarea"
// @Success      201   {object}  dto.TareaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tareas [post]
func (h *TareaHandler) Create(c *fiber.Ctx) error {
	var in dto.TareaRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	t, err := h.uc.Crear(GetNombre(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NuevaTareaResponse(t))
}

// List godoc
// @Summary      Listar tareas con filtros (barre vencimientos)
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        estado     query  string  false  "pendiente | en_progreso | completado | vencida"
// @Param        asignadoA  query  string  false  "Responsable"
// @Param        sucursal   query  string  false  "Sucursal"
// @Success      200        {array}  dto.TareaResponse
// @Router       /api/tareas [get]
func (h *TareaHandler) List(c *fiber.Ctx) error {
	var in dto.TareaFiltroRequest
	if !parseQuery(c, &in) {
		return nil
	}
	tareas, err := h.uc.Listar(in)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.TareaResponse, 0, len(tareas))
	for _, t := range tareas {
		out = append(out, dto.NuevaTareaResponse(t))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tarea por id
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Id de la tarea"
// @Success      200  {object}  dto.TareaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tareas/{id} [get]
func (h *TareaHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.Obtener(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.NuevaTareaResponse(t))
}

// Update godoc
// @Summary      Editar tarea abierta
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Id de la tarea"
// @Param        body  body  dto.TareaRequest  true  "Campos nuevos"
// @Success      200   {object}  dto.TareaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tareas/{id} [put]
func (h *TareaHandler) Update(c *fiber.Ctx) error {
	var in dto.TareaRequest
	if !parseYValidar(c, &in) {
		return nil
	}
	t, err := h.uc.Editar(c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.NuevaTareaResponse(t))
}

// Start godoc
// @Summary      Pasar tarea a en_progreso
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Id de la tarea"
// @Success      200  {object}  dto.TareaResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tareas/{id}/iniciar [post]
func (h *TareaHandler) Start(c *fiber.Ctx) error {
	t, err := h.uc.IniciarProgreso(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.NuevaTareaResponse(t))
}

// Complete godoc
// @Summary      Completar tarea con evidencia
// @Tags         tareas
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id          path      string  true   "Id de la tarea"
// @Param        comentario  formData  string  true   "Comentario obligatorio"
// @Param        fotos       formData  file    false  "Fotos de evidencia"
// @Success      200         {object}  dto.TareaResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      409         {object}  dto.ErrorResponse
// @Router       /api/tareas/{id}/completar [post]
func (h *TareaHandler) Complete(c *fiber.Ctx) error {
	comentario := c.FormValue("comentario")
	fotos, err := leerArchivos(c, "fotos")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "fotos inválidas"})
	}
	t, err := h.uc.Completar(c.Context(), c.Params("id"), GetNombre(c), comentario, fotos)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.NuevaTareaResponse(t))
}

// Delete godoc
// @Summary      Eliminar tarea
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Id de la tarea"
// @Success      200  {object}  dto.MensajeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tareas/{id} [delete]
func (h *TareaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "tarea eliminada"})
}

// leerArchivos lee todos los archivos multipart del campo dado.
func leerArchivos(c *fiber.Ctx, campo string) ([][]byte, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Sin multipart no hay fotos; el comentario puede venir igual.
		return nil, nil
	}
	var out [][]byte
	for _, fh := range form.File[campo] {
		b, err := leerArchivoMultipart(fh)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func leerArchivoMultipart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
