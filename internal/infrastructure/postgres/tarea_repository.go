package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/heliosapp/helios-api/internal/domain/entity"
	"github.com/heliosapp/helios-api/internal/domain/repository"
)

var _ repository.TareaRepository = (*TareaRepo)(nil)

// TareaRepo implementación de TareaRepository sobre PostgreSQL. La tarea
// completa viaja como documento jsonb bajo su id, igual que en el árbol
// original; el dominio decide qué campos existen.
type TareaRepo struct {
	q Querier
}

// NewTareaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTareaRepository(q Querier) *TareaRepo {
	return &TareaRepo{q: q}
}

// Guardar escribe la tarea completa (upsert).
func (r *TareaRepo) Guardar(t *entity.Tarea) error {
	datos, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(context.Background(), `
		INSERT INTO tareas (id, datos) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET datos = EXCLUDED.datos`,
		t.ID, datos,
	)
	if err != nil {
		return fmt.Errorf("guardar tarea: %w", err)
	}
	return nil
}

// ObtenerPorID obtiene una tarea por id.
func (r *TareaRepo) ObtenerPorID(id string) (*entity.Tarea, error) {
	var datos []byte
	err := r.q.QueryRow(context.Background(), `SELECT datos FROM tareas WHERE id = $1`, id).Scan(&datos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener tarea: %w", err)
	}
	var t entity.Tarea
	if err := json.Unmarshal(datos, &t); err != nil {
		return nil, fmt.Errorf("decodificar tarea %q: %w", id, err)
	}
	t.ID = id
	return &t, nil
}

// Listar devuelve todas las tareas.
func (r *TareaRepo) Listar() ([]*entity.Tarea, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, datos FROM tareas`)
	if err != nil {
		return nil, fmt.Errorf("listar tareas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Tarea
	for rows.Next() {
		var id string
		var datos []byte
		if err := rows.Scan(&id, &datos); err != nil {
			return nil, fmt.Errorf("scan tarea: %w", err)
		}
		var t entity.Tarea
		if err := json.Unmarshal(datos, &t); err != nil {
			return nil, fmt.Errorf("decodificar tarea %q: %w", id, err)
		}
		t.ID = id
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Eliminar borra una tarea.
func (r *TareaRepo) Eliminar(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM tareas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar tarea: %w", err)
	}
	return nil
}
