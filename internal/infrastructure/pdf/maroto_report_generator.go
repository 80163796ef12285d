// Package pdf implementa los reportes descargables de supervisión con
// Maroto v2.
//
// Layout del reporte de folio (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sucursal + Fecha  │  Supervisor + Ubicación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR CATEGORÍA: nombre + promedio                            │
//	│    tabla: Actividad | Puntuación | Comentario                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROMEDIO GENERAL                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/heliosapp/helios-api/internal/application/report"
	"github.com/heliosapp/helios-api/internal/domain/entity"
	agg "github.com/heliosapp/helios-api/internal/domain/folio"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.Generator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.Generator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// FolioPDF genera el reporte de un folio con sus promedios por categoría.
func (g *MarotoReportGenerator) FolioPDF(f *entity.Folio, agregado agg.Agregado) ([]byte, error) {
	m := maroto.New(baseConfig("Reporte de Folio"))

	m.AddRows(folioHeaderRow(f))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, cat := range agregado.Categorias {
		m.AddRows(categoriaTitleRow(cat))
		m.AddRows(actividadHeaderRow())
		for _, r := range actividadRows(cat.Sub) {
			m.AddRows(r)
		}
		m.AddRows(row.New(2))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(promedioGeneralRow(agregado))
	m.AddRows(row.New(14))
	m.AddRows(firmasRow(f.Usuario))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar folio: %w", err)
	}
	return doc.GetBytes(), nil
}

// SupervisionPDF genera el resumen de un periodo: contadores, promedios y la
// lista de folios incluidos.
func (g *MarotoReportGenerator) SupervisionPDF(folios []*entity.Folio, est agg.Estadisticas, desde, hasta string) ([]byte, error) {
	m := maroto.New(baseConfig("Reporte de Supervisión"))

	m.AddRows(supervisionHeaderRow(desde, hasta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(resumenRow(est))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(porSucursalRows(est.PorSucursal)...)
	m.AddRows(row.New(2))

	m.AddRows(folioListHeaderRow())
	for _, f := range folios {
		m.AddRows(folioListRow(f))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar supervisión: %w", err)
	}
	return doc.GetBytes(), nil
}

func baseConfig(titulo string) *marotoentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		Build()
}

// ── Secciones: folio ──────────────────────────────────────────────────────────

// folioHeaderRow: sucursal + fecha (izq) y supervisor + ubicación (der).
func folioHeaderRow(f *entity.Folio) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(f.Sucursal, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+f.Fecha, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FOLIO DE SUPERVISIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(f.Usuario, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New(nonEmpty(f.Ubicacion(), "sin ubicación"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// categoriaTitleRow: nombre de categoría con su promedio.
func categoriaTitleRow(cat agg.CategoriaAgregada) core.Row {
	nombre := cat.Clave
	if nombre == "" {
		nombre = "actividades"
	}
	return row.New(8).Add(
		col.New(8).Add(text.New(nombre, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New(
			"Promedio: "+formato1(cat.Promedio),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
				Color: colorPuntaje(cat.Promedio)},
		)),
	)
}

func actividadHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Actividad", 5, align.Left),
		h("Puntuación", 2, align.Center),
		h("Comentario", 5, align.Left),
	)
}

func actividadRows(subs []agg.SubPuntaje) []core.Row {
	result := make([]core.Row, 0, len(subs))
	for _, s := range subs {
		result = append(result, row.New(6).Add(
			col.New(5).Add(text.New(s.Clave, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(strconv.FormatFloat(s.Puntuacion, 'f', -1, 64), props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: colorPuntaje(s.Puntuacion),
			})),
			col.New(5).Add(text.New(nonEmpty(s.Comentario, "—"), props.Text{
				Size: 8, Top: 1, Color: colorGray,
			})),
		))
	}
	return result
}

func promedioGeneralRow(agregado agg.Agregado) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New("PROMEDIO GENERAL", props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New(formato1(agregado.Promedio), props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2,
			Color: colorPuntaje(agregado.Promedio),
		})),
	)
}

// firmasRow: líneas de firma del supervisor y del encargado de la sucursal.
func firmasRow(supervisor string) core.Row {
	firma := func(nombre, cargo string) core.Col {
		return col.New(5).Add(
			text.New("____________________________", props.Text{
				Size: 9, Align: align.Center, Top: 1, Color: colorGray,
			}),
			text.New(nombre, props.Text{Size: 8, Align: align.Center, Top: 6}),
			text.New(cargo, props.Text{Size: 7, Align: align.Center, Top: 10, Color: colorGray}),
		)
	}
	return row.New(16).Add(
		firma(supervisor, "Supervisor"),
		col.New(2),
		firma("", "Encargado de sucursal"),
	)
}

// ── Secciones: supervisión ────────────────────────────────────────────────────

func supervisionHeaderRow(desde, hasta string) core.Row {
	periodo := "todo el historial"
	if desde != "" || hasta != "" {
		periodo = nonEmpty(desde, "inicio") + " a " + nonEmpty(hasta, "hoy")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("REPORTE DE SUPERVISIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Periodo: "+periodo, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
	)
}

func resumenRow(est agg.Estadisticas) core.Row {
	celda := func(label, valor string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(valor, props.Text{Style: fontstyle.Bold, Size: 12, Top: 6}),
		)
	}
	return row.New(14).Add(
		celda("Folios", strconv.Itoa(est.Total)),
		celda("Promedio general", formato1(est.Promedio)),
		celda("Hoy", strconv.Itoa(est.Hoy)),
	)
}

func porSucursalRows(porSucursal map[string]int) []core.Row {
	if len(porSucursal) == 0 {
		return nil
	}
	claves := make([]string, 0, len(porSucursal))
	for s := range porSucursal {
		claves = append(claves, s)
	}
	sort.Strings(claves)

	rows := []core.Row{row.New(7).Add(col.New(12).Add(
		text.New("FOLIOS POR SUCURSAL", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		}),
	))}
	for _, s := range claves {
		rows = append(rows, row.New(5).Add(
			col.New(8).Add(text.New(s, props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(strconv.Itoa(porSucursal[s]), props.Text{
				Size: 8, Align: align.Right, Top: 1,
			})),
		))
	}
	return rows
}

func folioListHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Fecha", 3, align.Left),
		h("Sucursal", 4, align.Left),
		h("Supervisor", 3, align.Left),
		h("Promedio", 2, align.Right),
	)
}

func folioListRow(f *entity.Folio) core.Row {
	agregado := agg.AgregarFolio(f)
	return row.New(6).Add(
		col.New(3).Add(text.New(f.FechaCorta(), props.Text{Size: 8, Top: 1})),
		col.New(4).Add(text.New(f.Sucursal, props.Text{Size: 8, Top: 1})),
		col.New(3).Add(text.New(f.Usuario, props.Text{Size: 8, Top: 1, Color: colorGray})),
		col.New(2).Add(text.New(formato1(agregado.Promedio), props.Text{
			Size: 8, Align: align.Right, Top: 1, Color: colorPuntaje(agregado.Promedio),
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formato1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// colorPuntaje: rojo bajo 6, gris corporativo en el resto. El umbral es el
// mismo que usa el tablero para resaltar sucursales con problemas.
func colorPuntaje(v float64) *props.Color {
	if v > 0 && v < 6 {
		return colorAlert
	}
	return colorPrimary
}
