package entity

// Estados de una tarea.
const (
	TareaPendiente  = "pendiente"
	TareaEnProgreso = "en_progreso"
	TareaCompletada = "completado"
	TareaVencida    = "vencida"
)

// Prioridades de una tarea.
const (
	PrioridadAlta  = "alta"
	PrioridadMedia = "media"
	PrioridadBaja  = "baja"
)

// OrdenPrioridad devuelve el peso de orden de una prioridad (alta primero).
func OrdenPrioridad(p string) int {
	switch p {
	case PrioridadAlta:
		return 0
	case PrioridadMedia:
		return 1
	case PrioridadBaja:
		return 2
	default:
		return 1
	}
}

// Cumplimiento es la evidencia registrada al completar una tarea.
// Una vez escrita es inmutable.
type Cumplimiento struct {
	Comentario    string   `json:"comentario"`
	Fecha         string   `json:"fecha"`
	Fotos         []string `json:"fotos,omitempty"`
	CompletadoPor string   `json:"completadoPor"`
}

// Tarea es una asignación de trabajo con fecha límite y prioridad.
type Tarea struct {
	ID            string        `json:"-"`
	Titulo        string        `json:"titulo"`
	Descripcion   string        `json:"descripcion,omitempty"`
	AsignadoA     string        `json:"asignadoA"`
	Sucursal      string        `json:"sucursal"`
	FechaLimite   string        `json:"fechaLimite"` // YYYY-MM-DD
	Prioridad     string        `json:"prioridad"`
	Estado        string        `json:"estado"`
	FechaCreacion string        `json:"fechaCreacion,omitempty"`
	AsignadoPor   string        `json:"asignadoPor,omitempty"`
	Completada    *Cumplimiento `json:"completada,omitempty"`
}
