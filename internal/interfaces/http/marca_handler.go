package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/heliosapp/helios-api/internal/application/attendance"
	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/application/ports"
	"github.com/heliosapp/helios-api/internal/domain"
)

// MarcaHandler maneja el registro y consulta de asistencia.
type MarcaHandler struct {
	uc *attendance.UseCase
}

// NewMarcaHandler construye el handler.
func NewMarcaHandler(uc *attendance.UseCase) *MarcaHandler {
	return &MarcaHandler{uc: uc}
}

// camaraHTTP adapta el archivo multipart subido al puerto Camara: la foto ya
// la tomó el dispositivo del cliente, aquí solo se entrega.
type camaraHTTP struct {
	foto []byte
}

func (a camaraHTTP) Capturar(context.Context) ([]byte, error) {
	if len(a.foto) == 0 {
		return nil, domain.ErrCamaraNoDisponible
	}
	return a.foto, nil
}

// geoHTTP adapta las coordenadas del formulario al puerto Geolocalizador.
type geoHTTP struct {
	lat, lng *float64
	denegado bool
}

func (a geoHTTP) PosicionActual(context.Context) (ports.Posicion, error) {
	if a.denegado {
		return ports.Posicion{}, domain.ErrPermisoDenegado
	}
	if a.lat == nil || a.lng == nil {
		return ports.Posicion{}, domain.ErrPosicionNoDisponible
	}
	return ports.Posicion{Lat: *a.lat, Lng: *a.lng}, nil
}

// Register godoc
// @Summary      Registrar marca de entrada o salida
// @Tags         marcas
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        tipo  formData  string  true   "entrada | salida"
// @Param        foto  formData  file    true   "Foto de evidencia"
// @Param        lat   formData  number  true   "Latitud"
// @Param        lng   formData  number  true   "Longitud"
// @Success      201   {object}  dto.MarcaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/marcas [post]
func (h *MarcaHandler) Register(c *fiber.Ctx) error {
	tipo := c.FormValue("tipo")
	foto, _ := leerArchivo(c, "foto")
	lat := parseCoord(c.FormValue("lat"))
	lng := parseCoord(c.FormValue("lng"))
	denegado := c.FormValue("permiso") == "denegado"

	m, err := h.uc.Registrar(c.Context(), GetNombre(c), GetUserEmail(c), tipo,
		camaraHTTP{foto: foto},
		geoHTTP{lat: lat, lng: lng, denegado: denegado},
	)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MarcaResponse{
		ID:      m.ID,
		Usuario: m.Usuario,
		Email:   m.Email,
		Tipo:    m.Tipo,
		Fecha:   m.Fecha,
		Foto:    m.Foto,
		Lat:     m.Lat,
		Lng:     m.Lng,
	})
}

// List godoc
// @Summary      Listar marcas con filtros
// @Tags         marcas
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "Fecha mínima YYYY-MM-DD"
// @Param        hasta  query  string  false  "Fecha máxima YYYY-MM-DD"
// @Param        email  query  string  false  "Email del empleado"
// @Param        tipo   query  string  false  "entrada | salida"
// @Success      200    {array}  dto.MarcaResponse
// @Router       /api/marcas [get]
func (h *MarcaHandler) List(c *fiber.Ctx) error {
	var in dto.MarcaFiltroRequest
	if !parseQuery(c, &in) {
		return nil
	}
	marcas, err := h.uc.Listar(in)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.MarcaResponse, 0, len(marcas))
	for _, m := range marcas {
		out = append(out, dto.MarcaResponse{
			ID:      m.ID,
			Usuario: m.Usuario,
			Email:   m.Email,
			Tipo:    m.Tipo,
			Fecha:   m.Fecha,
			Foto:    m.Foto,
			Lat:     m.Lat,
			Lng:     m.Lng,
		})
	}
	return c.JSON(out)
}

// Today godoc
// @Summary      Marcas del día con contadores
// @Tags         marcas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AsistenciaHoyResponse
// @Router       /api/marcas/hoy [get]
func (h *MarcaHandler) Today(c *fiber.Ctx) error {
	out, err := h.uc.Hoy()
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
