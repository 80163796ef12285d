package repository

import "github.com/heliosapp/helios-api/internal/domain/taxonomy"

// TaxonomyRepository define el puerto de persistencia para el árbol de
// actividades (DIP). El árbol completo cabe en memoria; se carga entero y las
// escrituras son por categoría.
type TaxonomyRepository interface {
	Cargar() (taxonomy.Taxonomia, error)
	GuardarCategoria(clave string, cat taxonomy.Categoria) error
	EliminarCategoria(clave string) error
}
