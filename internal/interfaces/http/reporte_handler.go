package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/application/report"
)

// ReporteHandler maneja el tablero y los PDF descargables.
type ReporteHandler struct {
	uc *report.UseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *report.UseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen del tablero (folios, tareas, asistencia)
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde     query  string  false  "Fecha mínima YYYY-MM-DD"
// @Param        hasta     query  string  false  "Fecha máxima YYYY-MM-DD"
// @Param        sucursal  query  string  false  "Sucursal"
// @Param        usuario   query  string  false  "Supervisor"
// @Success      200       {object}  report.Tablero
// @Router       /api/reportes/tablero [get]
func (h *ReporteHandler) Dashboard(c *fiber.Ctx) error {
	var in dto.FolioFiltroRequest
	if !parseQuery(c, &in) {
		return nil
	}
	out, err := h.uc.Resumen(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// FolioPDF godoc
// @Summary      PDF de un folio
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Id del folio"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/folios/{id}/pdf [get]
func (h *ReporteHandler) FolioPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.FolioPDF(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="folio.pdf"`)
	return c.Send(pdf)
}

// SupervisionPDF godoc
// @Summary      PDF resumen de un periodo
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        desde     query  string  false  "Fecha mínima YYYY-MM-DD"
// @Param        hasta     query  string  false  "Fecha máxima YYYY-MM-DD"
// @Param        sucursal  query  string  false  "Sucursal"
// @Success      200       {file}  binary
// @Router       /api/reportes/supervision/pdf [get]
func (h *ReporteHandler) SupervisionPDF(c *fiber.Ctx) error {
	var in dto.FolioFiltroRequest
	if !parseQuery(c, &in) {
		return nil
	}
	pdf, err := h.uc.SupervisionPDF(in)
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="supervision.pdf"`)
	return c.Send(pdf)
}
