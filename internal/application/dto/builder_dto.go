package dto

// BuilderInicioRequest abre una sesión del asistente de folios.
type BuilderInicioRequest struct {
	Sucursal    string   `json:"sucursal" validate:"required,min=1"`
	Fecha       string   `json:"fecha" validate:"required,min=10"`
	Coordenadas string   `json:"coordenadas"`
	Lat         *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng         *float64 `json:"lng" validate:"omitempty,longitude"`
}

// BuilderPuntuacionRequest puntúa una subactividad del paso actual.
type BuilderPuntuacionRequest struct {
	Actividad  string `json:"actividad" validate:"required,min=1"`
	Puntuacion int    `json:"puntuacion" validate:"required,min=1,max=10"`
}

// BuilderComentarioRequest comenta una subactividad del paso actual.
type BuilderComentarioRequest struct {
	Actividad  string `json:"actividad" validate:"required,min=1"`
	Comentario string `json:"comentario" validate:"max=2000"`
}

// BuilderEstadoResponse estado visible de la sesión: paso actual, total y lo
// capturado hasta ahora en el paso.
type BuilderEstadoResponse struct {
	Sesion    string             `json:"sesion"`
	Paso      int                `json:"paso"`
	Total     int                `json:"total"`
	Categoria string             `json:"categoria,omitempty"`
	Sub       []BuilderSubEstado `json:"sub,omitempty"`
	Enviado   bool               `json:"enviado"`
}

// BuilderSubEstado progreso de una subactividad dentro del paso.
type BuilderSubEstado struct {
	Clave      string `json:"clave"`
	Puntuacion int    `json:"puntuacion"`
	Comentario string `json:"comentario,omitempty"`
	Fotos      int    `json:"fotos"`
}
