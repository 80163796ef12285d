package dto

import (
	"encoding/json"

	"github.com/heliosapp/helios-api/internal/domain/folio"
)

// FolioFiltroRequest criterios de listado de folios (query string).
type FolioFiltroRequest struct {
	Desde    string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta    string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
	Sucursal string `query:"sucursal"`
	Usuario  string `query:"usuario"`
}

// FolioResponse un folio con su id expuesto.
type FolioResponse struct {
	ID          string          `json:"id"`
	Usuario     string          `json:"usuario"`
	Sucursal    string          `json:"sucursal"`
	Fecha       string          `json:"fecha"`
	Ubicacion   string          `json:"ubicacion,omitempty"`
	Actividades json.RawMessage `json:"actividades"`
}

// FolioAgregadoResponse un folio junto a su agregación.
type FolioAgregadoResponse struct {
	FolioResponse
	Agregado folio.Agregado `json:"agregado"`
}

// FolioEdicionRequest edición administrativa de los campos generales.
type FolioEdicionRequest struct {
	Usuario  string `json:"usuario" validate:"omitempty,min=1"`
	Sucursal string `json:"sucursal" validate:"omitempty,min=1"`
	Fecha    string `json:"fecha" validate:"omitempty,min=10"`
}

// ActividadLegadoRequest escritura directa de una hoja de actividad, la ruta
// de compatibilidad con clientes antiguos que puntúan fuera del asistente.
type ActividadLegadoRequest struct {
	Categoria  string `json:"categoria"` // vacío en forma plana
	Actividad  string `json:"actividad" validate:"required,min=1"`
	Puntuacion int    `json:"puntuacion" validate:"min=0,max=10"`
	Comentario string `json:"comentario"`
}

// FolioLegadoRequest creación directa de un folio sin pasar por el asistente.
type FolioLegadoRequest struct {
	Usuario     string `json:"usuario" validate:"required,min=1"`
	Sucursal    string `json:"sucursal" validate:"required,min=1"`
	Fecha       string `json:"fecha" validate:"required,min=10"`
	Coordenadas string `json:"coordenadas"`
}
