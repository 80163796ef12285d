package pushid_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliosapp/helios-api/pkg/pushid"
)

func TestNew_FormaYValidez(t *testing.T) {
	id := pushid.New()
	assert.Len(t, id, 26)
	assert.Equal(t, id, string([]byte(id)), "solo ASCII")
	assert.True(t, pushid.Valid(id))
}

func TestNew_Unicas(t *testing.T) {
	vistas := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := pushid.New()
		require.False(t, vistas[id], "clave repetida: %s", id)
		vistas[id] = true
	}
}

// El orden lexicográfico de las claves debe coincidir con el orden de
// generación, incluso dentro del mismo milisegundo.
func TestNew_OrdenLexicograficoEsCronologico(t *testing.T) {
	ids := make([]string, 500)
	for i := range ids {
		ids[i] = pushid.New()
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestValid_Rechazos(t *testing.T) {
	assert.False(t, pushid.Valid(""))
	assert.False(t, pushid.Valid("no-es-un-id"))
	assert.False(t, pushid.Valid(pushid.New()+"x"))
}
