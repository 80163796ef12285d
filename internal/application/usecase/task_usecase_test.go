package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/application/usecase"
	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/entity"
)

// tareasFalsas implementa repository.TareaRepository en memoria.
type tareasFalsas struct {
	tareas map[string]*entity.Tarea
}

func nuevasTareasFalsas() *tareasFalsas {
	return &tareasFalsas{tareas: make(map[string]*entity.Tarea)}
}

func (r *tareasFalsas) Guardar(t *entity.Tarea) error {
	copia := *t
	r.tareas[t.ID] = &copia
	return nil
}

func (r *tareasFalsas) ObtenerPorID(id string) (*entity.Tarea, error) {
	t, ok := r.tareas[id]
	if !ok {
		return nil, nil
	}
	copia := *t
	return &copia, nil
}

func (r *tareasFalsas) Listar() ([]*entity.Tarea, error) {
	out := make([]*entity.Tarea, 0, len(r.tareas))
	for _, t := range r.tareas {
		copia := *t
		out = append(out, &copia)
	}
	return out, nil
}

func (r *tareasFalsas) Eliminar(id string) error {
	delete(r.tareas, id)
	return nil
}

// blobsDeTareas implementa ports.BlobStore; falla en la subida indicada.
type blobsDeTareas struct {
	subidas  int
	fallarEn int
}

func (b *blobsDeTareas) Subir(_ context.Context, carpeta, ext string, _ []byte) (string, error) {
	b.subidas++
	if b.fallarEn > 0 && b.subidas == b.fallarEn {
		return "", errors.New("almacén no disponible")
	}
	return "https://blobs.test/" + carpeta + "/foto." + ext, nil
}

func nuevoTaskUC(repo *tareasFalsas) *usecase.TaskUseCase {
	return usecase.NewTaskUseCase(repo, &blobsDeTareas{}, zerolog.Nop())
}

func fechaRelativa(dias int) string {
	return time.Now().AddDate(0, 0, dias).Format("2006-01-02")
}

func tareaValida(limite string) dto.TareaRequest {
	return dto.TareaRequest{
		Titulo:      "Revisar extintores",
		AsignadoA:   "luis@acme.com",
		Sucursal:    "centro",
		FechaLimite: limite,
		Prioridad:   entity.PrioridadMedia,
	}
}

func TestCrearTarea(t *testing.T) {
	repo := nuevasTareasFalsas()
	uc := nuevoTaskUC(repo)

	creada, err := uc.Crear("admin@acme.com", tareaValida(fechaRelativa(3)))
	require.NoError(t, err)

	assert.NotEmpty(t, creada.ID)
	assert.Equal(t, entity.TareaPendiente, creada.Estado)
	assert.Equal(t, "admin@acme.com", creada.AsignadoPor)
	assert.Contains(t, repo.tareas, creada.ID)
}

func TestCrearTarea_TituloVacio(t *testing.T) {
	uc := nuevoTaskUC(nuevasTareasFalsas())
	in := tareaValida(fechaRelativa(3))
	in.Titulo = "   "
	_, err := uc.Crear("admin", in)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestListar_BarreVencidasYPersiste(t *testing.T) {
	repo := nuevasTareasFalsas()
	uc := nuevoTaskUC(repo)

	vencida, err := uc.Crear("admin", tareaValida(fechaRelativa(-2)))
	require.NoError(t, err)
	vigente, err := uc.Crear("admin", tareaValida(fechaRelativa(2)))
	require.NoError(t, err)
	iniciada, err := uc.Crear("admin", tareaValida(fechaRelativa(-2)))
	require.NoError(t, err)
	_, err = uc.IniciarProgreso(iniciada.ID)
	require.NoError(t, err)

	out, err := uc.Listar(dto.TareaFiltroRequest{})
	require.NoError(t, err)
	require.Len(t, out, 3)

	porID := map[string]string{}
	for _, tt := range out {
		porID[tt.ID] = tt.Estado
	}
	assert.Equal(t, entity.TareaVencida, porID[vencida.ID])
	assert.Equal(t, entity.TareaPendiente, porID[vigente.ID])
	assert.Equal(t, entity.TareaEnProgreso, porID[iniciada.ID],
		"solo las pendientes vencen: una tarea en curso no se barre aunque su fecha pasó")

	// El vencimiento quedó persistido, no solo en la respuesta.
	assert.Equal(t, entity.TareaVencida, repo.tareas[vencida.ID].Estado)
}

func TestListar_OrdenPorPrioridadYFecha(t *testing.T) {
	uc := nuevoTaskUC(nuevasTareasFalsas())

	baja := tareaValida(fechaRelativa(1))
	baja.Prioridad = entity.PrioridadBaja
	tBaja, err := uc.Crear("admin", baja)
	require.NoError(t, err)

	altaTarde := tareaValida(fechaRelativa(5))
	altaTarde.Prioridad = entity.PrioridadAlta
	tAltaTarde, err := uc.Crear("admin", altaTarde)
	require.NoError(t, err)

	altaPronto := tareaValida(fechaRelativa(1))
	altaPronto.Prioridad = entity.PrioridadAlta
	tAltaPronto, err := uc.Crear("admin", altaPronto)
	require.NoError(t, err)

	out, err := uc.Listar(dto.TareaFiltroRequest{})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, tAltaPronto.ID, out[0].ID)
	assert.Equal(t, tAltaTarde.ID, out[1].ID)
	assert.Equal(t, tBaja.ID, out[2].ID)
}

func TestListar_Filtros(t *testing.T) {
	uc := nuevoTaskUC(nuevasTareasFalsas())

	deLuis := tareaValida(fechaRelativa(2))
	deAna := tareaValida(fechaRelativa(2))
	deAna.AsignadoA = "ana@acme.com"
	_, err := uc.Crear("admin", deLuis)
	require.NoError(t, err)
	_, err = uc.Crear("admin", deAna)
	require.NoError(t, err)

	out, err := uc.Listar(dto.TareaFiltroRequest{AsignadoA: "ANA@acme.com"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ana@acme.com", out[0].AsignadoA)
}

func TestEditar_VencidaConFechaFuturaVuelveAPendiente(t *testing.T) {
	repo := nuevasTareasFalsas()
	uc := nuevoTaskUC(repo)

	creada, err := uc.Crear("admin", tareaValida(fechaRelativa(-2)))
	require.NoError(t, err)
	_, err = uc.Listar(dto.TareaFiltroRequest{}) // el barrido la vence
	require.NoError(t, err)
	require.Equal(t, entity.TareaVencida, repo.tareas[creada.ID].Estado)

	editada, err := uc.Editar(creada.ID, tareaValida(fechaRelativa(4)))
	require.NoError(t, err)
	assert.Equal(t, entity.TareaPendiente, editada.Estado,
		"mover la fecha límite al futuro revive la tarea")
}

func TestEditar_VencidaReGuardadaVuelveAPendiente(t *testing.T) {
	repo := nuevasTareasFalsas()
	uc := nuevoTaskUC(repo)

	creada, err := uc.Crear("admin", tareaValida(fechaRelativa(-2)))
	require.NoError(t, err)
	_, err = uc.Listar(dto.TareaFiltroRequest{}) // el barrido la vence
	require.NoError(t, err)
	require.Equal(t, entity.TareaVencida, repo.tareas[creada.ID].Estado)

	// Re-guardar sin tocar la fecha: vuelve a pendiente aunque el límite siga
	// en el pasado.
	editada, err := uc.Editar(creada.ID, tareaValida(fechaRelativa(-2)))
	require.NoError(t, err)
	assert.Equal(t, entity.TareaPendiente, editada.Estado)
	assert.Equal(t, entity.TareaPendiente, repo.tareas[creada.ID].Estado)

	// El próximo listado la vuelve a vencer: esa es la asimetría del ciclo.
	_, err = uc.Listar(dto.TareaFiltroRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.TareaVencida, repo.tareas[creada.ID].Estado)
}

func TestEditar_CompletadaEsInmutable(t *testing.T) {
	repo := nuevasTareasFalsas()
	uc := nuevoTaskUC(repo)

	creada, err := uc.Crear("admin", tareaValida(fechaRelativa(2)))
	require.NoError(t, err)
	_, err = uc.Completar(context.Background(), creada.ID, "luis", "hecho", nil)
	require.NoError(t, err)

	_, err = uc.Editar(creada.ID, tareaValida(fechaRelativa(9)))
	assert.ErrorIs(t, err, domain.ErrTareaCompletada)
	_, err = uc.IniciarProgreso(creada.ID)
	assert.ErrorIs(t, err, domain.ErrTareaCompletada)
	_, err = uc.Completar(context.Background(), creada.ID, "luis", "otra vez", nil)
	assert.ErrorIs(t, err, domain.ErrTareaCompletada)
}

func TestIniciarProgreso_Idempotente(t *testing.T) {
	uc := nuevoTaskUC(nuevasTareasFalsas())
	creada, err := uc.Crear("admin", tareaValida(fechaRelativa(2)))
	require.NoError(t, err)

	t1, err := uc.IniciarProgreso(creada.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TareaEnProgreso, t1.Estado)

	t2, err := uc.IniciarProgreso(creada.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TareaEnProgreso, t2.Estado)
}

func TestCompletar_ComentarioObligatorio(t *testing.T) {
	uc := nuevoTaskUC(nuevasTareasFalsas())
	creada, err := uc.Crear("admin", tareaValida(fechaRelativa(2)))
	require.NoError(t, err)

	_, err = uc.Completar(context.Background(), creada.ID, "luis", "   ", nil)
	assert.ErrorIs(t, err, domain.ErrComentarioRequerido)
}

func TestCompletar_SubeFotosYEscribeEvidencia(t *testing.T) {
	repo := nuevasTareasFalsas()
	blobs := &blobsDeTareas{}
	uc := usecase.NewTaskUseCase(repo, blobs, zerolog.Nop())

	creada, err := uc.Crear("admin", tareaValida(fechaRelativa(2)))
	require.NoError(t, err)

	hecha, err := uc.Completar(context.Background(), creada.ID, "luis@acme.com", "todo en orden",
		[][]byte{[]byte("f1"), []byte("f2")})
	require.NoError(t, err)

	assert.Equal(t, 2, blobs.subidas)
	require.NotNil(t, hecha.Completada)
	assert.Equal(t, "todo en orden", hecha.Completada.Comentario)
	assert.Equal(t, "luis@acme.com", hecha.Completada.CompletadoPor)
	assert.Len(t, hecha.Completada.Fotos, 2)
}

func TestCompletar_FalloDeSubidaDejaLaTareaAbierta(t *testing.T) {
	repo := nuevasTareasFalsas()
	blobs := &blobsDeTareas{fallarEn: 2}
	uc := usecase.NewTaskUseCase(repo, blobs, zerolog.Nop())

	creada, err := uc.Crear("admin", tareaValida(fechaRelativa(2)))
	require.NoError(t, err)

	_, err = uc.Completar(context.Background(), creada.ID, "luis", "intento",
		[][]byte{[]byte("f1"), []byte("f2")})
	require.Error(t, err)

	guardada := repo.tareas[creada.ID]
	assert.Equal(t, entity.TareaPendiente, guardada.Estado)
	assert.Nil(t, guardada.Completada, "no se persiste evidencia parcial")
}

func TestEliminarTarea(t *testing.T) {
	repo := nuevasTareasFalsas()
	uc := nuevoTaskUC(repo)
	creada, err := uc.Crear("admin", tareaValida(fechaRelativa(2)))
	require.NoError(t, err)

	require.NoError(t, uc.Eliminar(creada.ID))
	assert.ErrorIs(t, uc.Eliminar(creada.ID), domain.ErrNoEncontrado)
}
