// Package report arma los reportes de supervisión: el resumen del tablero y
// los PDF descargables de folios y de periodos.
package report

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/entity"
	agg "github.com/heliosapp/helios-api/internal/domain/folio"
	"github.com/heliosapp/helios-api/internal/domain/repository"
)

// Generator define el puerto de generación de PDF. El adaptador concreto
// (maroto, mock) implementa el contrato.
type Generator interface {
	FolioPDF(f *entity.Folio, agregado agg.Agregado) ([]byte, error)
	SupervisionPDF(folios []*entity.Folio, est agg.Estadisticas, desde, hasta string) ([]byte, error)
}

// Tablero es el resumen combinado que alimenta la pantalla principal.
type Tablero struct {
	Folios         agg.Estadisticas `json:"folios"`
	TareasAbiertas int              `json:"tareasAbiertas"`
	TareasVencidas int              `json:"tareasVencidas"`
	EntradasHoy    int              `json:"entradasHoy"`
	SalidasHoy     int              `json:"salidasHoy"`
}

// UseCase casos de uso de reportes.
type UseCase struct {
	folios repository.FolioRepository
	tareas repository.TareaRepository
	marcas repository.MarcaRepository
	pdf    Generator
	log    zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(folios repository.FolioRepository, tareas repository.TareaRepository, marcas repository.MarcaRepository, pdf Generator, log zerolog.Logger) *UseCase {
	return &UseCase{folios: folios, tareas: tareas, marcas: marcas, pdf: pdf, log: log}
}

// Resumen carga folios, tareas y marcas en paralelo y arma el tablero. Un
// fallo en cualquiera de las tres cargas aborta el resumen completo.
func (uc *UseCase) Resumen(ctx context.Context, filtro dto.FolioFiltroRequest) (Tablero, error) {
	var (
		folios []*entity.Folio
		tareas []*entity.Tarea
		marcas []*entity.Marca
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		folios, err = uc.folios.Listar()
		return err
	})
	g.Go(func() error {
		var err error
		tareas, err = uc.tareas.Listar()
		return err
	})
	g.Go(func() error {
		var err error
		marcas, err = uc.marcas.Listar()
		return err
	})
	if err := g.Wait(); err != nil {
		return Tablero{}, err
	}

	hoy := time.Now().Format("2006-01-02")
	filtrados := agg.Filtrar(folios, agg.Filtro{
		Desde:       filtro.Desde,
		Hasta:       filtro.Hasta,
		Sucursal:    filtro.Sucursal,
		Propietario: filtro.Usuario,
		Email:       filtro.Usuario,
	})
	// Con usuario en el filtro el tablero es personal: solo sus tareas y sus
	// marcas cuentan. Sin usuario es el tablero global del admin.
	t := Tablero{Folios: agg.Calcular(filtrados, hoy)}
	for _, tarea := range tareas {
		if filtro.Usuario != "" && !strings.EqualFold(tarea.AsignadoA, filtro.Usuario) {
			continue
		}
		switch tarea.Estado {
		case entity.TareaPendiente, entity.TareaEnProgreso:
			t.TareasAbiertas++
		case entity.TareaVencida:
			t.TareasVencidas++
		}
	}
	for _, m := range marcas {
		if len(m.Fecha) < 10 || m.Fecha[:10] != hoy {
			continue
		}
		if filtro.Usuario != "" && !strings.EqualFold(m.Email, filtro.Usuario) {
			continue
		}
		switch m.Tipo {
		case entity.MarcaEntrada:
			t.EntradasHoy++
		case entity.MarcaSalida:
			t.SalidasHoy++
		}
	}
	return t, nil
}

// FolioPDF genera el PDF de un folio con sus promedios.
func (uc *UseCase) FolioPDF(id string) ([]byte, error) {
	f, err := uc.folios.ObtenerPorID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNoEncontrado
	}
	return uc.pdf.FolioPDF(f, agg.AgregarFolio(f))
}

// SupervisionPDF genera el PDF resumen de un periodo filtrado.
func (uc *UseCase) SupervisionPDF(filtro dto.FolioFiltroRequest) ([]byte, error) {
	folios, err := uc.folios.Listar()
	if err != nil {
		return nil, err
	}
	filtrados := agg.Filtrar(folios, agg.Filtro{
		Desde:       filtro.Desde,
		Hasta:       filtro.Hasta,
		Sucursal:    filtro.Sucursal,
		Propietario: filtro.Usuario,
		Email:       filtro.Usuario,
	})
	est := agg.Calcular(filtrados, time.Now().Format("2006-01-02"))
	return uc.pdf.SupervisionPDF(filtrados, est, filtro.Desde, filtro.Hasta)
}
