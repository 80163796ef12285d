package repository

import "github.com/heliosapp/helios-api/internal/domain/entity"

// TareaRepository define el puerto de persistencia para Tarea (DIP).
type TareaRepository interface {
	Guardar(t *entity.Tarea) error
	ObtenerPorID(id string) (*entity.Tarea, error)
	Listar() ([]*entity.Tarea, error)
	Eliminar(id string) error
}
