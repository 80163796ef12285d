package postgres

import (
	"context"
	"fmt"

	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/entity"
	"github.com/heliosapp/helios-api/internal/domain/repository"
)

var _ repository.MarcaRepository = (*MarcaRepo)(nil)

// MarcaRepo implementación de MarcaRepository sobre PostgreSQL. Las marcas
// son inmutables: solo INSERT y SELECT, nunca UPDATE.
type MarcaRepo struct {
	q Querier
}

// NewMarcaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMarcaRepository(q Querier) *MarcaRepo {
	return &MarcaRepo{q: q}
}

// Guardar inserta la marca. Una colisión de id es un conflicto, no un upsert.
func (r *MarcaRepo) Guardar(m *entity.Marca) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO marcas (id, usuario, email, tipo, fecha, foto, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.Usuario, m.Email, m.Tipo, m.Fecha, m.Foto, m.Lat, m.Lng,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflicto
		}
		return fmt.Errorf("guardar marca: %w", err)
	}
	return nil
}

// Listar devuelve todas las marcas.
func (r *MarcaRepo) Listar() ([]*entity.Marca, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, usuario, email, tipo, fecha, foto, lat, lng FROM marcas`)
	if err != nil {
		return nil, fmt.Errorf("listar marcas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Marca
	for rows.Next() {
		var m entity.Marca
		if err := rows.Scan(&m.ID, &m.Usuario, &m.Email, &m.Tipo, &m.Fecha, &m.Foto, &m.Lat, &m.Lng); err != nil {
			return nil, fmt.Errorf("scan marca: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
