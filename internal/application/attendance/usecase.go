package attendance

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/application/ports"
	"github.com/heliosapp/helios-api/internal/domain/entity"
	"github.com/heliosapp/helios-api/internal/domain/repository"
	"github.com/heliosapp/helios-api/pkg/pushid"
)

// UseCase registra y consulta marcas de asistencia.
type UseCase struct {
	repo  repository.MarcaRepository
	blobs ports.BlobStore
	log   zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.MarcaRepository, blobs ports.BlobStore, log zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, blobs: blobs, log: log}
}

// Registrar ejecuta el flujo completo de una marca: captura la foto y la
// posición con los dispositivos dados, sube la evidencia y persiste la marca
// inmutable. Cualquier fallo de dispositivo aborta sin escribir nada.
func (uc *UseCase) Registrar(ctx context.Context, usuario, email, tipo string, cam ports.Camara, geo ports.Geolocalizador) (*entity.Marca, error) {
	rec, err := NewRecorder(usuario, email, tipo)
	if err != nil {
		return nil, err
	}
	if err := rec.CapturarFoto(ctx, cam); err != nil {
		return nil, err
	}
	if err := rec.AdquirirPosicion(ctx, geo); err != nil {
		return nil, err
	}

	fotoURL, err := uc.blobs.Subir(ctx, "asistencia", "jpg", rec.Foto())
	if err != nil {
		return nil, err
	}
	m, err := rec.Marca(pushid.New(), time.Now().Format(time.RFC3339), fotoURL)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Guardar(m); err != nil {
		return nil, err
	}
	uc.log.Info().Str("marca", m.ID).Str("tipo", m.Tipo).Str("email", m.Email).Msg("marca registrada")
	return m, nil
}

// Listar devuelve las marcas que cumplen el filtro, más recientes primero.
func (uc *UseCase) Listar(in dto.MarcaFiltroRequest) ([]*entity.Marca, error) {
	marcas, err := uc.repo.Listar()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Marca, 0, len(marcas))
	for _, m := range marcas {
		fecha := m.Fecha
		if len(fecha) > 10 {
			fecha = fecha[:10]
		}
		if in.Desde != "" && fecha < in.Desde {
			continue
		}
		if in.Hasta != "" && fecha > in.Hasta {
			continue
		}
		if in.Email != "" && !strings.EqualFold(m.Email, in.Email) {
			continue
		}
		if in.Tipo != "" && m.Tipo != in.Tipo {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Fecha != out[j].Fecha {
			return out[i].Fecha > out[j].Fecha
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Hoy devuelve las marcas del día con sus contadores de entrada y salida.
func (uc *UseCase) Hoy() (dto.AsistenciaHoyResponse, error) {
	hoy := time.Now().Format("2006-01-02")
	marcas, err := uc.Listar(dto.MarcaFiltroRequest{Desde: hoy, Hasta: hoy})
	if err != nil {
		return dto.AsistenciaHoyResponse{}, err
	}
	out := dto.AsistenciaHoyResponse{Marcas: make([]dto.MarcaResponse, 0, len(marcas))}
	for _, m := range marcas {
		switch m.Tipo {
		case entity.MarcaEntrada:
			out.Entradas++
		case entity.MarcaSalida:
			out.Salidas++
		}
		out.Marcas = append(out.Marcas, dto.MarcaResponse{
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
	return out, nil
}
