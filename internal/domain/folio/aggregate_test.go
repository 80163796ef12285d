package folio_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliosapp/helios-api/internal/domain/entity"
	"github.com/heliosapp/helios-api/internal/domain/folio"
)

// ──────────────────────────────────────────────────────────────────────────────
// Agregar acepta las dos formas congeladas en datos históricos:
//
//	plana:   {"limpieza": {"puntuacion": 9}, "atencion": {"puntuacion": 7}}
//	anidada: {"limpieza": {"pisos": {"puntuacion": 8}, "banos": {...}}, ...}
//
// Estos tests fijan la detección estructural de la forma, la tolerancia a
// puntuaciones en texto o ausentes, la omisión de la clave "activo" y el
// redondeo a un decimal (mitad hacia arriba).
// ──────────────────────────────────────────────────────────────────────────────

func TestAgregar_FormaPlana(t *testing.T) {
	raw := json.RawMessage(`{
		"limpieza": {"puntuacion": 9, "comentario": "bien"},
		"atencion": {"puntuacion": 6}
	}`)

	agg := folio.Agregar(raw)

	require.Len(t, agg.Categorias, 1, "la forma plana se agrega como una única categoría sin nombre")
	cat := agg.Categorias[0]
	assert.Empty(t, cat.Clave)
	assert.Equal(t, 2, cat.Evaluadas)
	assert.Equal(t, 7.5, cat.Promedio)
	assert.Equal(t, 7.5, agg.Promedio)
	assert.Equal(t, 2, agg.Evaluadas)

	// Sub-entradas en orden de clave, con comentario conservado.
	require.Len(t, cat.Sub, 2)
	assert.Equal(t, "atencion", cat.Sub[0].Clave)
	assert.Equal(t, "limpieza", cat.Sub[1].Clave)
	assert.Equal(t, "bien", cat.Sub[1].Comentario)
}

func TestAgregar_FormaAnidada(t *testing.T) {
	raw := json.RawMessage(`{
		"limpieza": {
			"pisos":  {"puntuacion": 8},
			"banos":  {"puntuacion": 10}
		},
		"atencion": {
			"caja": {"puntuacion": 5}
		}
	}`)

	agg := folio.Agregar(raw)

	require.Len(t, agg.Categorias, 2)
	assert.Equal(t, "atencion", agg.Categorias[0].Clave)
	assert.Equal(t, "limpieza", agg.Categorias[1].Clave)

	// Promedio por categoría solo con sus propias hojas.
	assert.Equal(t, 5.0, agg.Categorias[0].Promedio)
	assert.Equal(t, 9.0, agg.Categorias[1].Promedio)

	// Promedio global sobre todas las hojas: (8+10+5)/3 = 7.666... → 7.7
	assert.Equal(t, 3, agg.Evaluadas)
	assert.Equal(t, 7.7, agg.Promedio)
}

func TestAgregar_DeteccionPorMuestreo(t *testing.T) {
	// Basta con que una entrada contenga "puntuacion" para tratar el mapa
	// entero como plano, aunque el resto tenga otras claves.
	plano := json.RawMessage(`{"unica": {"puntuacion": 4}}`)
	agg := folio.Agregar(plano)
	require.Len(t, agg.Categorias, 1)
	assert.Empty(t, agg.Categorias[0].Clave)

	anidado := json.RawMessage(`{"cat": {"sub": {"puntuacion": 4}}}`)
	agg = folio.Agregar(anidado)
	require.Len(t, agg.Categorias, 1)
	assert.Equal(t, "cat", agg.Categorias[0].Clave)
}

func TestAgregar_ClaveActivoSeOmite(t *testing.T) {
	// "activo" es metadato de taxonomía arrastrado: se omite tanto al nivel
	// de categoría como dentro de una categoría.
	raw := json.RawMessage(`{
		"activo": true,
		"limpieza": {
			"activo": true,
			"pisos": {"puntuacion": 8}
		}
	}`)

	agg := folio.Agregar(raw)

	require.Len(t, agg.Categorias, 1)
	assert.Equal(t, "limpieza", agg.Categorias[0].Clave)
	assert.Equal(t, 1, agg.Evaluadas)
	assert.Equal(t, 8.0, agg.Promedio)
}

func TestAgregar_PuntuacionTolerante(t *testing.T) {
	// Número, string numérico, ausente y basura: los dos últimos cuentan 0.
	raw := json.RawMessage(`{
		"a": {"puntuacion": 7},
		"b": {"puntuacion": "9"},
		"c": {"comentario": "sin puntuar"},
		"d": {"puntuacion": "no-numerico"}
	}`)

	agg := folio.Agregar(raw)

	require.Len(t, agg.Categorias, 1)
	sub := agg.Categorias[0].Sub
	require.Len(t, sub, 4)
	assert.Equal(t, 7.0, sub[0].Puntuacion)
	assert.Equal(t, 9.0, sub[1].Puntuacion)
	assert.Zero(t, sub[2].Puntuacion)
	assert.Zero(t, sub[3].Puntuacion)

	// (7+9+0+0)/4 = 4.0; las hojas sin puntuar sí cuentan en el divisor.
	assert.Equal(t, 4.0, agg.Promedio)
	assert.Equal(t, 4, agg.Evaluadas)
}

func TestAgregar_PuntuacionFraccionariaNoSeTrunca(t *testing.T) {
	// Datos históricos traen medios puntos, como número y como texto: entran a
	// la suma tal cual, igual que el parseFloat del cliente original.
	raw := json.RawMessage(`{
		"a": {"puntuacion": 7.5},
		"b": {"puntuacion": "8.5"}
	}`)

	agg := folio.Agregar(raw)

	require.Len(t, agg.Categorias, 1)
	sub := agg.Categorias[0].Sub
	require.Len(t, sub, 2)
	assert.Equal(t, 7.5, sub[0].Puntuacion)
	assert.Equal(t, 8.5, sub[1].Puntuacion)

	// (7.5+8.5)/2 = 8.0, no (7+8)/2 = 7.5.
	assert.Equal(t, 8.0, agg.Promedio)
}

func TestAgregar_RedondeoMitadArriba(t *testing.T) {
	// (8+9)/2 = 8.5 se conserva; (8+8+9)/3 = 8.333 → 8.3; (7+8)/2 = 7.5.
	raw := json.RawMessage(`{"a": {"puntuacion": 8}, "b": {"puntuacion": 8}, "c": {"puntuacion": 9}}`)
	agg := folio.Agregar(raw)
	assert.Equal(t, 8.3, agg.Promedio)

	raw = json.RawMessage(`{"a": {"puntuacion": 1}, "b": {"puntuacion": 2}}`)
	agg = folio.Agregar(raw)
	assert.Equal(t, 1.5, agg.Promedio, "la mitad exacta redondea hacia arriba, igual que toFixed(1)")
}

func TestAgregar_VacioYCorruptoNuncaNaN(t *testing.T) {
	casos := []json.RawMessage{
		nil,
		json.RawMessage(`{}`),
		json.RawMessage(`null`),
		json.RawMessage(`"no es un objeto"`),
		json.RawMessage(`{malformado`),
	}
	for _, raw := range casos {
		agg := folio.Agregar(raw)
		assert.Zero(t, agg.Promedio)
		assert.Zero(t, agg.Evaluadas)
		assert.NotNil(t, agg.Categorias, "Categorias siempre serializa como [] y no como null")
	}
}

func TestAgregarFolio_NilSeguro(t *testing.T) {
	agg := folio.AgregarFolio(nil)
	assert.Zero(t, agg.Evaluadas)

	f := &entity.Folio{Actividades: json.RawMessage(`{"a": {"puntuacion": 10}}`)}
	agg = folio.AgregarFolio(f)
	assert.Equal(t, 10.0, agg.Promedio)
}
