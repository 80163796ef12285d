package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/application/ports"
	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/entity"
	"github.com/heliosapp/helios-api/internal/domain/repository"
	"github.com/heliosapp/helios-api/pkg/pushid"
)

// TaskUseCase gestiona el ciclo de vida de tareas: alta, edición, vencimiento
// automático y cierre con evidencia. El vencimiento no corre en un planificador
// aparte: se barre al listar, que es cuando alguien va a mirar el estado.
type TaskUseCase struct {
	repo  repository.TareaRepository
	blobs ports.BlobStore
	log   zerolog.Logger
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TareaRepository, blobs ports.BlobStore, log zerolog.Logger) *TaskUseCase {
	return &TaskUseCase{repo: repo, blobs: blobs, log: log}
}

// Crear registra una tarea nueva en estado pendiente.
func (uc *TaskUseCase) Crear(asignadoPor string, in dto.TareaRequest) (*entity.Tarea, error) {
	t := &entity.Tarea{
		ID:            pushid.New(),
		Titulo:        strings.TrimSpace(in.Titulo),
		Descripcion:   strings.TrimSpace(in.Descripcion),
		AsignadoA:     in.AsignadoA,
		Sucursal:      in.Sucursal,
		FechaLimite:   in.FechaLimite,
		Prioridad:     in.Prioridad,
		Estado:        entity.TareaPendiente,
		FechaCreacion: time.Now().Format("2006-01-02 15:04:05"),
		AsignadoPor:   asignadoPor,
	}
	if t.Titulo == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if err := uc.repo.Guardar(t); err != nil {
		return nil, err
	}
	uc.log.Info().Str("tarea", t.ID).Str("asignado_a", t.AsignadoA).Msg("tarea creada")
	return t, nil
}

// Listar devuelve las tareas que pasan el filtro, tras barrer vencimientos.
// El orden es prioridad (alta primero) y fecha límite ascendente dentro de la
// misma prioridad.
func (uc *TaskUseCase) Listar(filtro dto.TareaFiltroRequest) ([]*entity.Tarea, error) {
	tareas, err := uc.repo.Listar()
	if err != nil {
		return nil, err
	}
	uc.barrerVencidas(tareas)

	out := make([]*entity.Tarea, 0, len(tareas))
	for _, t := range tareas {
		if filtro.Estado != "" && t.Estado != filtro.Estado {
			continue
		}
		if filtro.AsignadoA != "" && !strings.EqualFold(t.AsignadoA, filtro.AsignadoA) {
			continue
		}
		if filtro.Sucursal != "" && !strings.EqualFold(t.Sucursal, filtro.Sucursal) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := entity.OrdenPrioridad(out[i].Prioridad), entity.OrdenPrioridad(out[j].Prioridad)
		if pi != pj {
			return pi < pj
		}
		if out[i].FechaLimite != out[j].FechaLimite {
			return out[i].FechaLimite < out[j].FechaLimite
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// barrerVencidas marca como vencida toda tarea pendiente cuya fecha límite ya
// pasó. Una tarea en_progreso no vence: alguien ya está trabajando en ella. El
// barrido es de mejor esfuerzo: un fallo al persistir una marca se registra y
// no detiene el listado.
func (uc *TaskUseCase) barrerVencidas(tareas []*entity.Tarea) {
	hoy := time.Now().Format("2006-01-02")
	for _, t := range tareas {
		if t.Estado != entity.TareaPendiente {
			continue
		}
		if t.FechaLimite == "" || t.FechaLimite >= hoy {
			continue
		}
		t.Estado = entity.TareaVencida
		if err := uc.repo.Guardar(t); err != nil {
			uc.log.Warn().Err(err).Str("tarea", t.ID).Msg("no se pudo persistir el vencimiento")
		}
	}
}

// Obtener devuelve una tarea por id.
func (uc *TaskUseCase) Obtener(id string) (*entity.Tarea, error) {
	t, err := uc.repo.ObtenerPorID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNoEncontrado
	}
	return t, nil
}

// Editar actualiza los campos editables de una tarea abierta. Una tarea
// completada no se reabre. Re-guardar una tarea vencida sin evidencia de
// cierre la devuelve siempre a pendiente; si la fecha límite sigue en el
// pasado, el barrido del próximo listado la vence de nuevo.
func (uc *TaskUseCase) Editar(id string, in dto.TareaRequest) (*entity.Tarea, error) {
	t, err := uc.Obtener(id)
	if err != nil {
		return nil, err
	}
	if t.Estado == entity.TareaCompletada {
		return nil, domain.ErrTareaCompletada
	}
	t.Titulo = strings.TrimSpace(in.Titulo)
	t.Descripcion = strings.TrimSpace(in.Descripcion)
	t.AsignadoA = in.AsignadoA
	t.Sucursal = in.Sucursal
	t.FechaLimite = in.FechaLimite
	t.Prioridad = in.Prioridad
	if t.Estado == entity.TareaVencida {
		t.Estado = entity.TareaPendiente
	}
	if err := uc.repo.Guardar(t); err != nil {
		return nil, err
	}
	return t, nil
}

// IniciarProgreso pasa una tarea pendiente a en_progreso.
func (uc *TaskUseCase) IniciarProgreso(id string) (*entity.Tarea, error) {
	t, err := uc.Obtener(id)
	if err != nil {
		return nil, err
	}
	switch t.Estado {
	case entity.TareaCompletada:
		return nil, domain.ErrTareaCompletada
	case entity.TareaEnProgreso:
		return t, nil
	}
	t.Estado = entity.TareaEnProgreso
	if err := uc.repo.Guardar(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Completar cierra la tarea con su evidencia. El comentario es obligatorio;
// las fotos se suben antes de escribir el cierre, de modo que un fallo de
// subida deja la tarea abierta y sin evidencia parcial persistida.
func (uc *TaskUseCase) Completar(ctx context.Context, id, completadoPor, comentario string, fotos [][]byte) (*entity.Tarea, error) {
	if strings.TrimSpace(comentario) == "" {
		return nil, domain.ErrComentarioRequerido
	}
	t, err := uc.Obtener(id)
	if err != nil {
		return nil, err
	}
	if t.Estado == entity.TareaCompletada {
		return nil, domain.ErrTareaCompletada
	}

	urls := make([]string, 0, len(fotos))
	for _, foto := range fotos {
		url, err := uc.blobs.Subir(ctx, "tareas", "jpg", foto)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	t.Estado = entity.TareaCompletada
	t.Completada = &entity.Cumplimiento{
		Comentario:    strings.TrimSpace(comentario),
		Fecha:         time.Now().Format("2006-01-02 15:04:05"),
		Fotos:         urls,
		CompletadoPor: completadoPor,
	}
	if err := uc.repo.Guardar(t); err != nil {
		return nil, err
	}
	uc.log.Info().Str("tarea", t.ID).Str("por", completadoPor).Msg("tarea completada")
	return t, nil
}

// Eliminar borra una tarea.
func (uc *TaskUseCase) Eliminar(id string) error {
	if _, err := uc.Obtener(id); err != nil {
		return err
	}
	return uc.repo.Eliminar(id)
}
