package ports

import "context"

// Posicion es una lectura de geolocalización.
type Posicion struct {
	Lat float64
	Lng float64
}

// Geolocalizador define el puerto para adquirir la posición del dispositivo
// que registra una marca de asistencia. Sobre HTTP el adaptador envuelve las
// coordenadas que el cliente envía en el formulario; en pruebas se simula la
// denegación de permisos o la falta de señal.
type Geolocalizador interface {
	PosicionActual(ctx context.Context) (Posicion, error)
}

// Camara define el puerto para capturar la foto de evidencia de una marca.
// Sobre HTTP el adaptador envuelve el archivo multipart subido.
type Camara interface {
	Capturar(ctx context.Context) ([]byte, error)
}
