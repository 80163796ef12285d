package folio

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/application/ports"
	"github.com/heliosapp/helios-api/internal/application/usecase"
	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/entity"
	agg "github.com/heliosapp/helios-api/internal/domain/folio"
	"github.com/heliosapp/helios-api/internal/domain/repository"
	"github.com/heliosapp/helios-api/internal/domain/taxonomy"
	"github.com/heliosapp/helios-api/pkg/pushid"
)

// UseCase agrupa los casos de uso sobre folios: el asistente de captura, la
// consulta con agregación y la edición administrativa.
type UseCase struct {
	repo     repository.FolioRepository
	taxonomy *usecase.TaxonomyUseCase
	sesiones *Sessions
	blobs    ports.BlobStore
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.FolioRepository, tax *usecase.TaxonomyUseCase, blobs ports.BlobStore, log zerolog.Logger) *UseCase {
	return &UseCase{
		repo:     repo,
		taxonomy: tax,
		sesiones: NewSessions(),
		blobs:    blobs,
		log:      log,
	}
}

// ────────────────────────── asistente de captura ──────────────────────────

// Iniciar abre una sesión del asistente con la taxonomía activa congelada y
// captura la información general del paso 0.
func (uc *UseCase) Iniciar(propietario string, in dto.BuilderInicioRequest) (string, error) {
	b := NewBuilder(propietario, uc.taxonomy.Activas())
	if err := b.SetGeneral(in.Sucursal, in.Fecha, in.Coordenadas, in.Lat, in.Lng); err != nil {
		return "", err
	}
	id := uc.sesiones.Abrir(b)
	uc.log.Debug().Str("sesion", id).Str("propietario", propietario).Msg("sesión de folio abierta")
	return id, nil
}

// Estado devuelve el estado visible de la sesión.
func (uc *UseCase) Estado(sesion, propietario string) (dto.BuilderEstadoResponse, error) {
	var out dto.BuilderEstadoResponse
	err := uc.sesiones.Con(sesion, propietario, func(b *Builder) error {
		out = estadoDe(sesion, b)
		return nil
	})
	return out, err
}

func estadoDe(sesion string, b *Builder) dto.BuilderEstadoResponse {
	out := dto.BuilderEstadoResponse{
		Sesion:    sesion,
		Paso:      b.Paso(),
		Total:     b.TotalPasos(),
		Categoria: b.CategoriaActual(),
		Enviado:   b.Enviado(),
	}
	if cat := b.CategoriaActual(); cat != "" {
		for _, sub := range clavesDe(b.datos[cat]) {
			reg := b.datos[cat][sub]
			out.Sub = append(out.Sub, dto.BuilderSubEstado{
				Clave:      sub,
				Puntuacion: reg.Puntuacion,
				Comentario: reg.Comentario,
				Fotos:      len(reg.Fotos),
			})
		}
	}
	return out
}

// Puntuar puntúa una subactividad del paso actual de la sesión.
func (uc *UseCase) Puntuar(sesion, propietario string, in dto.BuilderPuntuacionRequest) error {
	return uc.sesiones.Con(sesion, propietario, func(b *Builder) error {
		return b.SetPuntuacion(in.Actividad, in.Puntuacion)
	})
}

// Comentar comenta una subactividad del paso actual de la sesión.
func (uc *UseCase) Comentar(sesion, propietario string, in dto.BuilderComentarioRequest) error {
	return uc.sesiones.Con(sesion, propietario, func(b *Builder) error {
		return b.SetComentario(in.Actividad, in.Comentario)
	})
}

// AdjuntarFoto retiene una foto de evidencia en la sesión.
func (uc *UseCase) AdjuntarFoto(sesion, propietario, actividad string, foto []byte) error {
	return uc.sesiones.Con(sesion, propietario, func(b *Builder) error {
		return b.AdjuntarFoto(actividad, foto)
	})
}

// Avanzar pasa la sesión al paso siguiente.
func (uc *UseCase) Avanzar(sesion, propietario string) (dto.BuilderEstadoResponse, error) {
	var out dto.BuilderEstadoResponse
	err := uc.sesiones.Con(sesion, propietario, func(b *Builder) error {
		if err := b.Avanzar(); err != nil {
			return err
		}
		out = estadoDe(sesion, b)
		return nil
	})
	return out, err
}

// Retroceder devuelve la sesión al paso anterior.
func (uc *UseCase) Retroceder(sesion, propietario string) (dto.BuilderEstadoResponse, error) {
	var out dto.BuilderEstadoResponse
	err := uc.sesiones.Con(sesion, propietario, func(b *Builder) error {
		if err := b.Retroceder(); err != nil {
			return err
		}
		out = estadoDe(sesion, b)
		return nil
	})
	return out, err
}

// Enviar materializa la sesión en un folio persistido. Si la subida de
// evidencia o la escritura fallan, la sesión queda intacta y puede
// reintentarse; solo tras guardar se sella y se descarta.
func (uc *UseCase) Enviar(ctx context.Context, sesion, propietario, usuario string) (*entity.Folio, error) {
	var folio *entity.Folio
	err := uc.sesiones.Con(sesion, propietario, func(b *Builder) error {
		f, err := b.Materializar(ctx, uc.blobs, usuario)
		if err != nil {
			return err
		}
		if err := uc.repo.Guardar(f); err != nil {
			return err
		}
		b.MarcarEnviado()
		folio = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = uc.sesiones.Cerrar(sesion, propietario)
	uc.log.Info().Str("folio", folio.ID).Str("sucursal", folio.Sucursal).Msg("folio enviado")
	return folio, nil
}

// Abandonar descarta una sesión sin enviar.
func (uc *UseCase) Abandonar(sesion, propietario string) error {
	return uc.sesiones.Cerrar(sesion, propietario)
}

// ────────────────────────── consulta y edición ──────────────────────────

// Listar devuelve los folios que cumplen el filtro, más recientes primero.
func (uc *UseCase) Listar(in dto.FolioFiltroRequest) ([]dto.FolioResponse, error) {
	folios, err := uc.repo.Listar()
	if err != nil {
		return nil, err
	}
	filtrados := agg.Filtrar(folios, agg.Filtro{
		Desde:       in.Desde,
		Hasta:       in.Hasta,
		Sucursal:    in.Sucursal,
		Propietario: in.Usuario,
		Email:       in.Usuario,
	})
	out := make([]dto.FolioResponse, 0, len(filtrados))
	for _, f := range filtrados {
		out = append(out, aResponse(f))
	}
	return out, nil
}

// Obtener devuelve un folio por id.
func (uc *UseCase) Obtener(id string) (dto.FolioResponse, error) {
	f, err := uc.obtener(id)
	if err != nil {
		return dto.FolioResponse{}, err
	}
	return aResponse(f), nil
}

// Agregado devuelve un folio junto a sus promedios por categoría.
func (uc *UseCase) Agregado(id string) (dto.FolioAgregadoResponse, error) {
	f, err := uc.obtener(id)
	if err != nil {
		return dto.FolioAgregadoResponse{}, err
	}
	return dto.FolioAgregadoResponse{
		FolioResponse: aResponse(f),
		Agregado:      agg.AgregarFolio(f),
	}, nil
}

// Editar sobrescribe los campos generales de un folio (ruta administrativa).
// Las actividades no se tocan por aquí.
func (uc *UseCase) Editar(id string, in dto.FolioEdicionRequest) (dto.FolioResponse, error) {
	f, err := uc.obtener(id)
	if err != nil {
		return dto.FolioResponse{}, err
	}
	campos := make(map[string]interface{}, 3)
	if in.Usuario != "" {
		campos["usuario"] = in.Usuario
		f.Usuario = in.Usuario
	}
	if in.Sucursal != "" {
		campos["sucursal"] = in.Sucursal
		f.Sucursal = in.Sucursal
	}
	if in.Fecha != "" {
		campos["fecha"] = in.Fecha
		f.Fecha = in.Fecha
	}
	if len(campos) == 0 {
		return aResponse(f), nil
	}
	if err := uc.repo.ActualizarCampos(id, campos); err != nil {
		return dto.FolioResponse{}, err
	}
	return aResponse(f), nil
}

// Eliminar borra un folio (ruta administrativa).
func (uc *UseCase) Eliminar(id string) error {
	if _, err := uc.obtener(id); err != nil {
		return err
	}
	return uc.repo.Eliminar(id)
}

// ────────────────────────── ruta de compatibilidad ──────────────────────────

// CrearLegado crea un folio directo sin pasar por el asistente, con el árbol
// de actividades vacío; los clientes antiguos lo van rellenando hoja a hoja.
func (uc *UseCase) CrearLegado(in dto.FolioLegadoRequest) (*entity.Folio, error) {
	f := &entity.Folio{
		ID:          pushid.New(),
		Usuario:     in.Usuario,
		Sucursal:    in.Sucursal,
		Fecha:       in.Fecha,
		Coordenadas: in.Coordenadas,
		Actividades: json.RawMessage(`{}`),
	}
	if err := uc.repo.Guardar(f); err != nil {
		return nil, err
	}
	return f, nil
}

// GuardarActividadLegado escribe una hoja suelta dentro de un folio, sin
// reescribir las hermanas. La escritura no es atómica respecto de otras
// hojas: dos clientes tocando hojas distintas del mismo folio no se pisan,
// dos tocando la misma gana el último.
func (uc *UseCase) GuardarActividadLegado(id string, in dto.ActividadLegadoRequest) error {
	if _, err := uc.obtener(id); err != nil {
		return err
	}
	if in.Puntuacion < 0 || in.Puntuacion > 10 {
		return domain.ErrPuntuacionInvalida
	}
	hoja, err := json.Marshal(entity.Actividad{
		Puntuacion: in.Puntuacion,
		Comentario: in.Comentario,
	})
	if err != nil {
		return err
	}
	ruta := []string{taxonomy.NormalizarClave(in.Actividad)}
	if in.Categoria != "" {
		ruta = []string{taxonomy.NormalizarClave(in.Categoria), taxonomy.NormalizarClave(in.Actividad)}
	}
	return uc.repo.GuardarActividad(id, ruta, hoja)
}

// Estadisticas calcula los contadores del tablero sobre los folios filtrados.
func (uc *UseCase) Estadisticas(in dto.FolioFiltroRequest) (agg.Estadisticas, error) {
	folios, err := uc.repo.Listar()
	if err != nil {
		return agg.Estadisticas{}, err
	}
	filtrados := agg.Filtrar(folios, agg.Filtro{
		Desde:       in.Desde,
		Hasta:       in.Hasta,
		Sucursal:    in.Sucursal,
		Propietario: in.Usuario,
		Email:       in.Usuario,
	})
	return agg.Calcular(filtrados, time.Now().Format("2006-01-02")), nil
}

func (uc *UseCase) obtener(id string) (*entity.Folio, error) {
	f, err := uc.repo.ObtenerPorID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNoEncontrado
	}
	return f, nil
}

func aResponse(f *entity.Folio) dto.FolioResponse {
	return dto.FolioResponse{
		ID:          f.ID,
		Usuario:     f.Usuario,
		Sucursal:    f.Sucursal,
		Fecha:       f.Fecha,
		Ubicacion:   f.Ubicacion(),
		Actividades: f.Actividades,
	}
}

func clavesDe(m map[string]*captura) []string {
	claves := make([]string, 0, len(m))
	for k := range m {
		claves = append(claves, k)
	}
	sort.Strings(claves)
	return claves
}
