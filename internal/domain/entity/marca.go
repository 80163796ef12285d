package entity

// Tipos de marca de asistencia.
const (
	MarcaEntrada = "entrada"
	MarcaSalida  = "salida"
)

// Marca representa un evento de reloj (entrada o salida) con evidencia de
// cámara y geolocalización. Las marcas son inmutables: no existe ruta de
// edición ni borrado en el flujo normal.
type Marca struct {
	ID      string  `json:"-"`
	Usuario string  `json:"usuario"`
	Email   string  `json:"email"`
	Tipo    string  `json:"tipo"`  // entrada | salida
	Fecha   string  `json:"fecha"` // timestamp ISO
	Foto    string  `json:"foto"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}
