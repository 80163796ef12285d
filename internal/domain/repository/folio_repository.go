package repository

import (
	"encoding/json"

	"github.com/heliosapp/helios-api/internal/domain/entity"
)

// FolioRepository define el puerto de persistencia para Folio (DIP).
type FolioRepository interface {
	// Guardar escribe el folio completo bajo su id (upsert).
	Guardar(f *entity.Folio) error
	// ActualizarCampos sobrescribe campos sueltos del documento sin tocar el
	// resto. Las claves son nombres de campo del JSON persistido.
	ActualizarCampos(id string, campos map[string]interface{}) error
	// GuardarActividad escribe una hoja bajo la ruta dada dentro de
	// actividades ("clave" en forma plana, "categoria/sub" en anidada),
	// sin reescribir las hermanas.
	GuardarActividad(id string, ruta []string, hoja json.RawMessage) error
	ObtenerPorID(id string) (*entity.Folio, error)
	Listar() ([]*entity.Folio, error)
	Eliminar(id string) error
}
