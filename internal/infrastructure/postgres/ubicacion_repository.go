package postgres

import (
	"context"
	"fmt"

	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/repository"
)

var _ repository.UbicacionRepository = (*UbicacionRepo)(nil)

// UbicacionRepo implementación de UbicacionRepository sobre PostgreSQL.
type UbicacionRepo struct {
	q Querier
}

// NewUbicacionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUbicacionRepository(q Querier) *UbicacionRepo {
	return &UbicacionRepo{q: q}
}

// Guardar agrega la sucursal al catálogo.
func (r *UbicacionRepo) Guardar(nombre string) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO ubicaciones (nombre) VALUES ($1)`, nombre)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("guardar ubicación: %w", err)
	}
	return nil
}

// Listar devuelve los nombres del catálogo.
func (r *UbicacionRepo) Listar() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT nombre FROM ubicaciones`)
	if err != nil {
		return nil, fmt.Errorf("listar ubicaciones: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var nombre string
		if err := rows.Scan(&nombre); err != nil {
			return nil, fmt.Errorf("scan ubicación: %w", err)
		}
		out = append(out, nombre)
	}
	return out, rows.Err()
}

// Eliminar quita la sucursal del catálogo.
func (r *UbicacionRepo) Eliminar(nombre string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM ubicaciones WHERE nombre = $1`, nombre)
	if err != nil {
		return fmt.Errorf("eliminar ubicación: %w", err)
	}
	return nil
}
