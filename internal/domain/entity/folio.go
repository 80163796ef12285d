package entity

import "encoding/json"

// Actividad es el registro hoja de una inspección: puntuación 1..10 (0 = sin
// puntuar en datos históricos), comentario libre y URLs estables de evidencia.
type Actividad struct {
	Puntuacion int      `json:"puntuacion"`
	Comentario string   `json:"comentario,omitempty"`
	Fotos      []string `json:"fotos,omitempty"`
}

// Folio representa una visita de inspección fechada de un supervisor a una
// sucursal. Actividades conserva el JSON tal cual fue escrito en su momento:
// la forma (plana o anidada) queda congelada al crear el folio y solo el
// agregador la interpreta. Usuario guarda a veces el nombre visible y a veces
// el email, según la ruta de escritura histórica que lo creó.
type Folio struct {
	ID          string          `json:"-"`
	Usuario     string          `json:"usuario"`
	Sucursal    string          `json:"sucursal"`
	Fecha       string          `json:"fecha"` // "YYYY-MM-DD HH:MM:SS" o ISO; el prefijo de 10 chars es la fecha
	Coordenadas string          `json:"coordenadas,omitempty"`
	Lat         *float64        `json:"lat,omitempty"`
	Lng         *float64        `json:"lng,omitempty"`
	Actividades json.RawMessage `json:"actividades"`
}

// FechaCorta devuelve el prefijo YYYY-MM-DD de la fecha almacenada.
func (f *Folio) FechaCorta() string {
	if len(f.Fecha) >= 10 {
		return f.Fecha[:10]
	}
	return f.Fecha
}

// Ubicacion devuelve las coordenadas en formato "lat,lng", con preferencia por
// el campo legado coordenadas y cayendo a lat+lng si existen ambos.
func (f *Folio) Ubicacion() string {
	if f.Coordenadas != "" {
		return f.Coordenadas
	}
	if f.Lat != nil && f.Lng != nil {
		return formatCoord(*f.Lat) + "," + formatCoord(*f.Lng)
	}
	return ""
}

func formatCoord(v float64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
