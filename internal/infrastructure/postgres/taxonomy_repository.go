package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heliosapp/helios-api/internal/domain/repository"
	"github.com/heliosapp/helios-api/internal/domain/taxonomy"
)

var _ repository.TaxonomyRepository = (*TaxonomyRepo)(nil)

// TaxonomyRepo implementación de TaxonomyRepository sobre PostgreSQL. Cada
// categoría es una fila con su definición jsonb en la forma persistida
// (boolean legado u objeto con bandera "activo"); la normalización la hace el
// tipo taxonomy.Categoria al (de)serializar.
type TaxonomyRepo struct {
	q Querier
}

// NewTaxonomyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxonomyRepository(q Querier) *TaxonomyRepo {
	return &TaxonomyRepo{q: q}
}

// Cargar lee el árbol completo.
func (r *TaxonomyRepo) Cargar() (taxonomy.Taxonomia, error) {
	rows, err := r.q.Query(context.Background(), `SELECT clave, definicion FROM actividades`)
	if err != nil {
		return nil, fmt.Errorf("cargar actividades: %w", err)
	}
	defer rows.Close()

	arbol := make(taxonomy.Taxonomia)
	for rows.Next() {
		var clave string
		var definicion []byte
		if err := rows.Scan(&clave, &definicion); err != nil {
			return nil, fmt.Errorf("scan actividad: %w", err)
		}
		var cat taxonomy.Categoria
		if err := json.Unmarshal(definicion, &cat); err != nil {
			return nil, fmt.Errorf("decodificar categoría %q: %w", clave, err)
		}
		arbol[taxonomy.NormalizarClave(clave)] = cat
	}
	return arbol, rows.Err()
}

// GuardarCategoria escribe la categoría completa (upsert).
func (r *TaxonomyRepo) GuardarCategoria(clave string, cat taxonomy.Categoria) error {
	definicion, err := json.Marshal(cat)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(context.Background(), `
		INSERT INTO actividades (clave, definicion) VALUES ($1, $2)
		ON CONFLICT (clave) DO UPDATE SET definicion = EXCLUDED.definicion`,
		clave, definicion,
	)
	if err != nil {
		return fmt.Errorf("guardar categoría: %w", err)
	}
	return nil
}

// EliminarCategoria borra la categoría con todas sus subactividades.
func (r *TaxonomyRepo) EliminarCategoria(clave string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM actividades WHERE clave = $1`, clave)
	if err != nil {
		return fmt.Errorf("eliminar categoría: %w", err)
	}
	return nil
}
