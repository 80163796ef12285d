package repository

import "github.com/heliosapp/helios-api/internal/domain/entity"

// MarcaRepository define el puerto de persistencia para Marca (DIP).
// Las marcas solo se crean y se listan: no hay edición ni borrado.
type MarcaRepository interface {
	Guardar(m *entity.Marca) error
	Listar() ([]*entity.Marca, error)
}
