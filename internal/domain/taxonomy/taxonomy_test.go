package taxonomy_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliosapp/helios-api/internal/domain/taxonomy"
)

// ──────────────────────────────────────────────────────────────────────────────
// El formato persistido de /actividades arrastra dos formas por categoría:
//
//	"limpieza": true                                  (legado)
//	"limpieza": {"activo": true, "pisos": true, ...}  (actual)
//
// Estos tests fijan la normalización a Categoria{Activa, Sub, Legado}, la
// semántica fail-open de "activo" y la reserialización en la forma de origen.
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoria_DecodificaFormaLegado(t *testing.T) {
	var c taxonomy.Categoria
	require.NoError(t, json.Unmarshal([]byte(`true`), &c))
	assert.True(t, c.Activa)
	assert.True(t, c.Legado)
	assert.Empty(t, c.Sub)

	require.NoError(t, json.Unmarshal([]byte(`false`), &c))
	assert.False(t, c.Activa)
	assert.True(t, c.Legado)
}

func TestCategoria_DecodificaFormaObjeto(t *testing.T) {
	var c taxonomy.Categoria
	require.NoError(t, json.Unmarshal([]byte(`{"activo": true, "Pisos": true, "banos": 1}`), &c))

	assert.True(t, c.Activa)
	assert.False(t, c.Legado)
	// Las claves se normalizan y el valor de la subactividad no importa,
	// solo su existencia.
	assert.Equal(t, []string{"banos", "pisos"}, c.Subactividades())
}

func TestCategoria_ActivoAusenteFallaAbierto(t *testing.T) {
	var c taxonomy.Categoria
	require.NoError(t, json.Unmarshal([]byte(`{"pisos": true}`), &c))
	assert.True(t, c.Activa, `sin bandera "activo" la categoría cuenta como activa`)
}

func TestCategoria_ActivoFalso(t *testing.T) {
	var c taxonomy.Categoria
	require.NoError(t, json.Unmarshal([]byte(`{"activo": false, "pisos": true}`), &c))
	assert.False(t, c.Activa)
	assert.Equal(t, []string{"pisos"}, c.Subactividades(), `"activo" nunca es subactividad`)
}

func TestCategoria_ReserializaEnSuFormaDeOrigen(t *testing.T) {
	legado := taxonomy.Categoria{Activa: true, Legado: true}
	b, err := json.Marshal(legado)
	require.NoError(t, err)
	assert.JSONEq(t, `true`, string(b))

	moderna := taxonomy.Categoria{Activa: false, Sub: map[string]bool{"pisos": true}}
	b, err = json.Marshal(moderna)
	require.NoError(t, err)
	assert.JSONEq(t, `{"activo": false, "pisos": true}`, string(b))
}

func TestCategoria_IdaYVuelta(t *testing.T) {
	original := []byte(`{"activo": true, "pisos": true, "banos": true}`)

	var c taxonomy.Categoria
	require.NoError(t, json.Unmarshal(original, &c))
	vuelta, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, string(original), string(vuelta))
}

func TestNormalizarClave(t *testing.T) {
	assert.Equal(t, "limpieza", taxonomy.NormalizarClave("  Limpieza "))
	assert.Equal(t, "", taxonomy.NormalizarClave("   "))
}

func TestTaxonomia_Activas(t *testing.T) {
	tx := taxonomy.Taxonomia{
		"limpieza": {Activa: true, Sub: map[string]bool{"pisos": true}},
		"atencion": {Activa: false, Sub: map[string]bool{"caja": true}},
		"seguridad": {Activa: true, Legado: true},
	}

	activas := tx.Activas()
	assert.Equal(t, []string{"limpieza", "seguridad"}, activas.Claves())

	// Activas copia en profundidad: mutar la copia no toca el árbol.
	activas["limpieza"].Sub["nueva"] = true
	assert.NotContains(t, tx["limpieza"].Sub, "nueva")
}

func TestTaxonomia_EsPlana(t *testing.T) {
	assert.True(t, taxonomy.Taxonomia{}.EsPlana())
	assert.True(t, taxonomy.Taxonomia{
		"a": {Activa: true, Legado: true},
		"b": {Activa: true, Legado: true},
	}.EsPlana())
	assert.False(t, taxonomy.Taxonomia{
		"a": {Activa: true, Legado: true},
		"b": {Activa: true, Sub: map[string]bool{"x": true}},
	}.EsPlana(), "una sola categoría moderna vuelve anidado el árbol entero")
}
