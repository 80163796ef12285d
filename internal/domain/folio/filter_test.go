package folio_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliosapp/helios-api/internal/domain/entity"
	"github.com/heliosapp/helios-api/internal/domain/folio"
)

func folioDe(id, usuario, sucursal, fecha string) *entity.Folio {
	return &entity.Folio{ID: id, Usuario: usuario, Sucursal: sucursal, Fecha: fecha}
}

func TestFiltro_RangoDeFechasInclusivo(t *testing.T) {
	fl := folio.Filtro{Desde: "2026-03-01", Hasta: "2026-03-31"}

	assert.True(t, fl.Coincide(folioDe("a", "", "", "2026-03-01 08:00:00")), "el extremo inferior entra")
	assert.True(t, fl.Coincide(folioDe("b", "", "", "2026-03-31 23:59:00")), "el extremo superior entra")
	assert.False(t, fl.Coincide(folioDe("c", "", "", "2026-02-28 12:00:00")))
	assert.False(t, fl.Coincide(folioDe("d", "", "", "2026-04-01 00:00:00")))
}

func TestFiltro_CamposVaciosNoFiltran(t *testing.T) {
	fl := folio.Filtro{}
	assert.True(t, fl.Coincide(folioDe("a", "ana", "centro", "2026-03-05 10:00:00")))
}

func TestFiltro_SucursalSinDistincionDeMayusculas(t *testing.T) {
	fl := folio.Filtro{Sucursal: "Centro"}
	assert.True(t, fl.Coincide(folioDe("a", "", "centro", "2026-03-05")))
	assert.False(t, fl.Coincide(folioDe("b", "", "norte", "2026-03-05")))
}

// El campo usuario del folio guarda a veces el nombre visible y a veces el
// email según la ruta histórica que lo escribió: el filtro acepta cualquiera
// de los dos criterios contra ese único campo.
func TestFiltro_PropietarioOEmail(t *testing.T) {
	porNombre := folioDe("a", "Ana Pérez", "centro", "2026-03-05")
	porEmail := folioDe("b", "ana@acme.com", "centro", "2026-03-05")

	fl := folio.Filtro{Propietario: "ana pérez", Email: "ana@acme.com"}
	assert.True(t, fl.Coincide(porNombre))
	assert.True(t, fl.Coincide(porEmail))

	fl = folio.Filtro{Propietario: "otro", Email: "otro@acme.com"}
	assert.False(t, fl.Coincide(porNombre))
	assert.False(t, fl.Coincide(porEmail))
}

func TestFiltrar_OrdenaPorFechaYLuegoID(t *testing.T) {
	folios := []*entity.Folio{
		folioDe("id1", "", "", "2026-03-01 09:00:00"),
		folioDe("id3", "", "", "2026-03-02 09:00:00"),
		folioDe("id2", "", "", "2026-03-02 09:00:00"),
	}

	out := folio.Filtrar(folios, folio.Filtro{})

	require.Len(t, out, 3)
	assert.Equal(t, "id3", out[0].ID, "a igual fecha gana el id mayor (creado después)")
	assert.Equal(t, "id2", out[1].ID)
	assert.Equal(t, "id1", out[2].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estadísticas del tablero
// ──────────────────────────────────────────────────────────────────────────────

func TestCalcular_Contadores(t *testing.T) {
	act := json.RawMessage(`{"limpieza": {"puntuacion": 8}}`)
	folios := []*entity.Folio{
		{ID: "a", Usuario: "ana", Sucursal: "centro", Fecha: "2026-03-05 10:00:00", Actividades: act},
		{ID: "b", Usuario: "ana", Sucursal: "norte", Fecha: "2026-03-05 12:00:00", Actividades: act},
		{ID: "c", Usuario: "luis", Sucursal: "centro", Fecha: "2026-03-04 09:00:00", Actividades: act},
	}

	est := folio.Calcular(folios, "2026-03-05")

	assert.Equal(t, 3, est.Total)
	assert.Equal(t, 2, est.Hoy)
	assert.Equal(t, 2, est.PorSucursal["centro"])
	assert.Equal(t, 1, est.PorSucursal["norte"])
	assert.Equal(t, 2, est.PorUsuario["ana"])
	assert.Equal(t, 2, est.PorDia["2026-03-05"])
	assert.Equal(t, 1, est.PorDia["2026-03-04"])
	assert.Equal(t, 3, est.PorActividad["limpieza"])
}

func TestCalcular_PromedioDePromedios(t *testing.T) {
	// El promedio global promedia los promedios por folio, no las hojas:
	// folio a = (10+10)/2 = 10, folio b = 4 → global (10+4)/2 = 7.
	folios := []*entity.Folio{
		{ID: "a", Fecha: "2026-03-05", Actividades: json.RawMessage(`{"x": {"puntuacion": 10}, "y": {"puntuacion": 10}}`)},
		{ID: "b", Fecha: "2026-03-05", Actividades: json.RawMessage(`{"x": {"puntuacion": 4}}`)},
	}

	est := folio.Calcular(folios, "2026-03-05")
	assert.Equal(t, 7.0, est.Promedio)
}

func TestCalcular_FoliosSinActividadesNoDiluyenElPromedio(t *testing.T) {
	folios := []*entity.Folio{
		{ID: "a", Fecha: "2026-03-05", Actividades: json.RawMessage(`{"x": {"puntuacion": 8}}`)},
		{ID: "b", Fecha: "2026-03-05", Actividades: json.RawMessage(`{}`)},
	}

	est := folio.Calcular(folios, "2026-03-05")
	assert.Equal(t, 2, est.Total)
	assert.Equal(t, 8.0, est.Promedio, "un folio sin hojas evaluadas no entra en el divisor")
}

func TestCalcular_ActividadAnidadaUsaRutaCompuesta(t *testing.T) {
	folios := []*entity.Folio{
		{ID: "a", Fecha: "2026-03-05", Actividades: json.RawMessage(`{"limpieza": {"pisos": {"puntuacion": 8}}}`)},
	}

	est := folio.Calcular(folios, "2026-03-05")
	assert.Equal(t, 1, est.PorActividad["limpieza/pisos"])
}

func TestCalcular_Vacio(t *testing.T) {
	est := folio.Calcular(nil, "2026-03-05")
	assert.Zero(t, est.Total)
	assert.Zero(t, est.Promedio)
	assert.NotNil(t, est.PorSucursal)
}
