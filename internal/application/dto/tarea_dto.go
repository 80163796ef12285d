package dto

import "github.com/heliosapp/helios-api/internal/domain/entity"

// TareaRequest alta o edición de una tarea.
type TareaRequest struct {
	Titulo      string `json:"titulo" validate:"required,min=1,max=160"`
	Descripcion string `json:"descripcion" validate:"max=2000"`
	AsignadoA   string `json:"asignadoA" validate:"required,min=1"`
	Sucursal    string `json:"sucursal" validate:"required,min=1"`
	FechaLimite string `json:"fechaLimite" validate:"required,datetime=2006-01-02"`
	Prioridad   string `json:"prioridad" validate:"required,oneof=alta media baja"`
}

// TareaFiltroRequest criterios de listado de tareas (query string).
type TareaFiltroRequest struct {
	Estado    string `query:"estado" validate:"omitempty,oneof=pendiente en_progreso completado vencida"`
	AsignadoA string `query:"asignadoA"`
	Sucursal  string `query:"sucursal"`
}

// CompletarTareaRequest evidencia de cumplimiento; el comentario es
// obligatorio, las fotos no.
type CompletarTareaRequest struct {
	Comentario string `json:"comentario" validate:"required,min=1,max=2000"`
}

// TareaResponse una tarea con su id expuesto.
type TareaResponse struct {
	ID            string               `json:"id"`
	Titulo        string               `json:"titulo"`
	Descripcion   string               `json:"descripcion,omitempty"`
	AsignadoA     string               `json:"asignadoA"`
	Sucursal      string               `json:"sucursal"`
	FechaLimite   string               `json:"fechaLimite"`
	Prioridad     string               `json:"prioridad"`
	Estado        string               `json:"estado"`
	FechaCreacion string               `json:"fechaCreacion,omitempty"`
	AsignadoPor   string               `json:"asignadoPor,omitempty"`
	Completada    *entity.Cumplimiento `json:"completada,omitempty"`
}

// NuevaTareaResponse mapea la entidad al DTO de salida.
func NuevaTareaResponse(t *entity.Tarea) TareaResponse {
	return TareaResponse{
		ID:            t.ID,
		Titulo:        t.Titulo,
		Descripcion:   t.Descripcion,
		AsignadoA:     t.AsignadoA,
		Sucursal:      t.Sucursal,
		FechaLimite:   t.FechaLimite,
		Prioridad:     t.Prioridad,
		Estado:        t.Estado,
		FechaCreacion: t.FechaCreacion,
		AsignadoPor:   t.AsignadoPor,
		Completada:    t.Completada,
	}
}
