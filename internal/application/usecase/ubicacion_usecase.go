package usecase

import (
	"sort"
	"strings"

	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/repository"
)

// UbicacionUseCase mantiene el catálogo de sucursales contra el que se
// levantan folios y se asignan tareas.
type UbicacionUseCase struct {
	repo repository.UbicacionRepository
}

// NewUbicacionUseCase construye el caso de uso.
func NewUbicacionUseCase(repo repository.UbicacionRepository) *UbicacionUseCase {
	return &UbicacionUseCase{repo: repo}
}

// Listar devuelve las sucursales ordenadas.
func (uc *UbicacionUseCase) Listar() ([]string, error) {
	nombres, err := uc.repo.Listar()
	if err != nil {
		return nil, err
	}
	sort.Strings(nombres)
	return nombres, nil
}

// Crear agrega una sucursal al catálogo.
func (uc *UbicacionUseCase) Crear(nombre string) error {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return domain.ErrEntradaInvalida
	}
	existentes, err := uc.repo.Listar()
	if err != nil {
		return err
	}
	for _, e := range existentes {
		if strings.EqualFold(e, nombre) {
			return domain.ErrDuplicado
		}
	}
	return uc.repo.Guardar(nombre)
}

// Eliminar quita una sucursal del catálogo. Los folios y tareas que ya la
// referencian conservan el nombre congelado.
func (uc *UbicacionUseCase) Eliminar(nombre string) error {
	return uc.repo.Eliminar(strings.TrimSpace(nombre))
}
