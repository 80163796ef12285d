package usecase_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliosapp/helios-api/internal/application/usecase"
	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/taxonomy"
)

// taxonomiaFalsa implementa repository.TaxonomyRepository en memoria y permite
// inyectar fallos de escritura y borrado.
type taxonomiaFalsa struct {
	arbol        taxonomy.Taxonomia
	fallaGuardar error
	fallaBorrar  error
}

func nuevaTaxonomiaFalsa() *taxonomiaFalsa {
	return &taxonomiaFalsa{arbol: make(taxonomy.Taxonomia)}
}

func (r *taxonomiaFalsa) Cargar() (taxonomy.Taxonomia, error) {
	out := make(taxonomy.Taxonomia, len(r.arbol))
	for k, v := range r.arbol {
		out[k] = v.Clone()
	}
	return out, nil
}

func (r *taxonomiaFalsa) GuardarCategoria(clave string, cat taxonomy.Categoria) error {
	if r.fallaGuardar != nil {
		return r.fallaGuardar
	}
	r.arbol[clave] = cat.Clone()
	return nil
}

func (r *taxonomiaFalsa) EliminarCategoria(clave string) error {
	if r.fallaBorrar != nil {
		return r.fallaBorrar
	}
	delete(r.arbol, clave)
	return nil
}

func nuevoTaxonomyUC(t *testing.T, repo *taxonomiaFalsa) *usecase.TaxonomyUseCase {
	t.Helper()
	uc, err := usecase.NewTaxonomyUseCase(repo, zerolog.Nop())
	require.NoError(t, err)
	return uc
}

func TestCrearCategoria_NormalizaYPersiste(t *testing.T) {
	repo := nuevaTaxonomiaFalsa()
	uc := nuevoTaxonomyUC(t, repo)

	require.NoError(t, uc.CrearCategoria("  Limpieza ", []string{"Pisos", " baños "}))

	cat, ok := repo.arbol["limpieza"]
	require.True(t, ok, "la clave se normaliza antes de persistir")
	assert.True(t, cat.Activa)
	assert.Equal(t, []string{"baños", "pisos"}, cat.Subactividades())
}

func TestCrearCategoria_Duplicada(t *testing.T) {
	uc := nuevoTaxonomyUC(t, nuevaTaxonomiaFalsa())
	require.NoError(t, uc.CrearCategoria("limpieza", nil))
	assert.ErrorIs(t, uc.CrearCategoria("LIMPIEZA", nil), domain.ErrDuplicado,
		"las claves que normalizan igual chocan")
}

func TestCrearCategoria_ClaveReservada(t *testing.T) {
	uc := nuevoTaxonomyUC(t, nuevaTaxonomiaFalsa())
	assert.ErrorIs(t, uc.CrearCategoria("activo", nil), domain.ErrClaveReservada)
	assert.ErrorIs(t, uc.CrearCategoria("limpieza", []string{"activo"}), domain.ErrClaveReservada)
}

func TestRenombrarCategoria_CopiaYBorra(t *testing.T) {
	repo := nuevaTaxonomiaFalsa()
	uc := nuevoTaxonomyUC(t, repo)
	require.NoError(t, uc.CrearCategoria("limpieza", []string{"pisos"}))

	require.NoError(t, uc.RenombrarCategoria("limpieza", "aseo"))

	assert.NotContains(t, repo.arbol, "limpieza")
	require.Contains(t, repo.arbol, "aseo")
	assert.Equal(t, []string{"pisos"}, repo.arbol["aseo"].Subactividades(),
		"el renombrado conserva las subactividades")
}

func TestRenombrarCategoria_MismaClaveEsNoOp(t *testing.T) {
	repo := nuevaTaxonomiaFalsa()
	uc := nuevoTaxonomyUC(t, repo)
	require.NoError(t, uc.CrearCategoria("limpieza", nil))
	assert.NoError(t, uc.RenombrarCategoria("limpieza", " LIMPIEZA "))
	assert.Contains(t, repo.arbol, "limpieza")
}

func TestRenombrarCategoria_DestinoOcupado(t *testing.T) {
	uc := nuevoTaxonomyUC(t, nuevaTaxonomiaFalsa())
	require.NoError(t, uc.CrearCategoria("limpieza", nil))
	require.NoError(t, uc.CrearCategoria("aseo", nil))
	assert.ErrorIs(t, uc.RenombrarCategoria("limpieza", "aseo"), domain.ErrDuplicado)
}

func TestRenombrarCategoria_FalloAlBorrarNoPierdeLaCategoria(t *testing.T) {
	repo := nuevaTaxonomiaFalsa()
	uc := nuevoTaxonomyUC(t, repo)
	require.NoError(t, uc.CrearCategoria("limpieza", nil))

	repo.fallaBorrar = errors.New("base caída")
	require.Error(t, uc.RenombrarCategoria("limpieza", "aseo"))

	// Se copia primero y se borra después: el peor caso es una copia de más.
	assert.Contains(t, repo.arbol, "limpieza")
	assert.Contains(t, repo.arbol, "aseo")
	assert.Contains(t, uc.Arbol(), "limpieza", "el árbol en memoria no se tocó")
}

func TestEliminarCategoria(t *testing.T) {
	repo := nuevaTaxonomiaFalsa()
	uc := nuevoTaxonomyUC(t, repo)
	require.NoError(t, uc.CrearCategoria("limpieza", []string{"pisos"}))

	require.NoError(t, uc.EliminarCategoria("limpieza"))
	assert.NotContains(t, repo.arbol, "limpieza")
	assert.ErrorIs(t, uc.EliminarCategoria("limpieza"), domain.ErrNoEncontrado)
}

func TestSetActiva_NoTocaSubactividades(t *testing.T) {
	repo := nuevaTaxonomiaFalsa()
	uc := nuevoTaxonomyUC(t, repo)
	require.NoError(t, uc.CrearCategoria("limpieza", []string{"pisos"}))

	require.NoError(t, uc.SetActiva("limpieza", false))
	assert.False(t, repo.arbol["limpieza"].Activa)
	assert.Equal(t, []string{"pisos"}, repo.arbol["limpieza"].Subactividades())
	assert.NotContains(t, uc.Activas(), "limpieza")
}

func TestAgregarSub_ConvierteCategoriaLegado(t *testing.T) {
	repo := nuevaTaxonomiaFalsa()
	repo.arbol["seguridad"] = taxonomy.Categoria{Activa: true, Legado: true}
	uc := nuevoTaxonomyUC(t, repo)

	require.NoError(t, uc.AgregarSub("seguridad", "alarmas"))

	cat := repo.arbol["seguridad"]
	assert.False(t, cat.Legado, "agregar una subactividad saca la categoría de la forma legado")
	assert.Equal(t, []string{"alarmas"}, cat.Subactividades())
}

func TestAgregarSub_Duplicada(t *testing.T) {
	uc := nuevoTaxonomyUC(t, nuevaTaxonomiaFalsa())
	require.NoError(t, uc.CrearCategoria("limpieza", []string{"pisos"}))
	assert.ErrorIs(t, uc.AgregarSub("limpieza", "PISOS"), domain.ErrDuplicado)
}

func TestRenombrarSub(t *testing.T) {
	repo := nuevaTaxonomiaFalsa()
	uc := nuevoTaxonomyUC(t, repo)
	require.NoError(t, uc.CrearCategoria("limpieza", []string{"pisos", "banos"}))

	require.NoError(t, uc.RenombrarSub("limpieza", "pisos", "suelos"))
	assert.Equal(t, []string{"banos", "suelos"}, repo.arbol["limpieza"].Subactividades())

	assert.ErrorIs(t, uc.RenombrarSub("limpieza", "no-existe", "x"), domain.ErrNoEncontrado)
	assert.ErrorIs(t, uc.RenombrarSub("limpieza", "suelos", "banos"), domain.ErrDuplicado)
}

func TestEliminarSub(t *testing.T) {
	repo := nuevaTaxonomiaFalsa()
	uc := nuevoTaxonomyUC(t, repo)
	require.NoError(t, uc.CrearCategoria("limpieza", []string{"pisos"}))

	require.NoError(t, uc.EliminarSub("limpieza", "pisos"))
	assert.Empty(t, repo.arbol["limpieza"].Subactividades())
	assert.ErrorIs(t, uc.EliminarSub("limpieza", "pisos"), domain.ErrNoEncontrado)
}

func TestSuscribir_RecibeCopiaTrasCadaMutacion(t *testing.T) {
	uc := nuevoTaxonomyUC(t, nuevaTaxonomiaFalsa())

	avisos := make(chan taxonomy.Taxonomia, 1)
	cancelar := uc.Suscribir(func(arbol taxonomy.Taxonomia) {
		avisos <- arbol
	})

	require.NoError(t, uc.CrearCategoria("limpieza", nil))
	select {
	case arbol := <-avisos:
		assert.Contains(t, arbol, "limpieza")
		// La copia es del suscriptor: mutarla no toca el árbol vivo.
		delete(arbol, "limpieza")
		assert.Contains(t, uc.Arbol(), "limpieza")
	case <-time.After(time.Second):
		t.Fatal("el suscriptor nunca recibió el aviso")
	}

	cancelar()
	require.NoError(t, uc.CrearCategoria("atencion", nil))
	select {
	case <-avisos:
		t.Fatal("un suscriptor cancelado no debe recibir avisos")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSuscribir_MutacionesRapidasEntreganElArbolMasReciente(t *testing.T) {
	uc := nuevoTaxonomyUC(t, nuevaTaxonomiaFalsa())

	var mu sync.Mutex
	var recibidos []taxonomy.Taxonomia
	uc.Suscribir(func(arbol taxonomy.Taxonomia) {
		mu.Lock()
		recibidos = append(recibidos, arbol)
		mu.Unlock()
	})

	require.NoError(t, uc.CrearCategoria("limpieza", nil))
	require.NoError(t, uc.CrearCategoria("atencion", nil))
	require.NoError(t, uc.CrearCategoria("seguridad", nil))

	// La entrega es asíncrona: se espera hasta ver la última mutación.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		if len(recibidos) == 0 {
			return false
		}
		_, ok := recibidos[len(recibidos)-1]["seguridad"]
		return ok
	}, time.Second, 5*time.Millisecond, "el aviso con la última mutación nunca llegó")

	// Las entregas avanzan en orden de mutación: una copia nunca es más vieja
	// que la anterior, y la final trae el árbol completo.
	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(recibidos); i++ {
		assert.GreaterOrEqual(t, len(recibidos[i]), len(recibidos[i-1]),
			"un suscriptor no debe recibir un árbol viejo después de uno nuevo")
	}
	ultimo := recibidos[len(recibidos)-1]
	assert.Contains(t, ultimo, "limpieza")
	assert.Contains(t, ultimo, "atencion")
	assert.Contains(t, ultimo, "seguridad")
}
