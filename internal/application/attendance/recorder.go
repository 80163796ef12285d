// Package attendance implementa el registro de asistencia: la captura de
// evidencia (foto y posición) previa a una marca y su persistencia inmutable.
package attendance

import (
	"context"

	"github.com/heliosapp/helios-api/internal/application/ports"
	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/entity"
)

// Recorder acumula la evidencia de una marca en curso. La foto y la posición
// se adquieren por separado y en cualquier orden; la marca solo puede
// guardarse cuando ambas están presentes. Un Recorder sirve para una sola
// marca.
type Recorder struct {
	usuario string
	email   string
	tipo    string

	foto     []byte
	fotoOK   bool
	posicion ports.Posicion
	posOK    bool
}

// NewRecorder abre el registro de una marca del tipo dado.
func NewRecorder(usuario, email, tipo string) (*Recorder, error) {
	if tipo != entity.MarcaEntrada && tipo != entity.MarcaSalida {
		return nil, domain.ErrEntradaInvalida
	}
	if usuario == "" && email == "" {
		return nil, domain.ErrEntradaInvalida
	}
	return &Recorder{usuario: usuario, email: email, tipo: tipo}, nil
}

// CapturarFoto adquiere la foto de evidencia. Puede reintentarse: la última
// captura reemplaza la anterior.
func (r *Recorder) CapturarFoto(ctx context.Context, cam ports.Camara) error {
	foto, err := cam.Capturar(ctx)
	if err != nil {
		return err
	}
	if len(foto) == 0 {
		return domain.ErrCamaraNoDisponible
	}
	r.foto = foto
	r.fotoOK = true
	return nil
}

// AdquirirPosicion adquiere la geolocalización. Igual que la foto, la última
// lectura reemplaza la anterior.
func (r *Recorder) AdquirirPosicion(ctx context.Context, geo ports.Geolocalizador) error {
	pos, err := geo.PosicionActual(ctx)
	if err != nil {
		return err
	}
	r.posicion = pos
	r.posOK = true
	return nil
}

// PuedeGuardar indica si ya hay foto y posición.
func (r *Recorder) PuedeGuardar() bool {
	return r.fotoOK && r.posOK
}

// Marca arma la entidad final con la URL de la foto ya subida. Falla con
// ErrMarcaIncompleta si falta evidencia.
func (r *Recorder) Marca(id, fecha, fotoURL string) (*entity.Marca, error) {
	if !r.PuedeGuardar() {
		return nil, domain.ErrMarcaIncompleta
	}
	return &entity.Marca{
		ID:      id,
		Usuario: r.usuario,
		Email:   r.email,
		Tipo:    r.tipo,
		Fecha:   fecha,
		Foto:    fotoURL,
		Lat:     r.posicion.Lat,
		Lng:     r.posicion.Lng,
	}, nil
}

// Foto devuelve la evidencia capturada, para subirla antes de armar la marca.
func (r *Recorder) Foto() []byte { return r.foto }
