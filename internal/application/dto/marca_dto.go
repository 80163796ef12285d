package dto

// MarcaFiltroRequest criterios de listado de marcas (query string).
type MarcaFiltroRequest struct {
	Desde string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
	Email string `query:"email" validate:"omitempty,email"`
	Tipo  string `query:"tipo" validate:"omitempty,oneof=entrada salida"`
}

// MarcaResponse una marca con su id expuesto.
type MarcaResponse struct {
	ID      string  `json:"id"`
	Usuario string  `json:"usuario"`
	Email   string  `json:"email"`
	Tipo    string  `json:"tipo"`
	Fecha   string  `json:"fecha"`
	Foto    string  `json:"foto"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// AsistenciaHoyResponse contadores del día para el panel de asistencia.
type AsistenciaHoyResponse struct {
	Entradas int             `json:"entradas"`
	Salidas  int             `json:"salidas"`
	Marcas   []MarcaResponse `json:"marcas"`
}
