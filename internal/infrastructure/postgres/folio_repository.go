package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/entity"
	"github.com/heliosapp/helios-api/internal/domain/repository"
)

var _ repository.FolioRepository = (*FolioRepo)(nil)

// FolioRepo implementación de FolioRepository sobre PostgreSQL. La columna
// actividades guarda el árbol tal cual se escribió (forma plana o anidada);
// el SQL nunca lo interpreta, solo lo transporta.
type FolioRepo struct {
	q Querier
}

// NewFolioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFolioRepository(q Querier) *FolioRepo {
	return &FolioRepo{q: q}
}

// Guardar escribe el folio completo (upsert).
func (r *FolioRepo) Guardar(f *entity.Folio) error {
	actividades := f.Actividades
	if len(actividades) == 0 {
		actividades = json.RawMessage(`{}`)
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO folios (id, usuario, sucursal, fecha, coordenadas, lat, lng, actividades)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			usuario = EXCLUDED.usuario,
			sucursal = EXCLUDED.sucursal,
			fecha = EXCLUDED.fecha,
			coordenadas = EXCLUDED.coordenadas,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			actividades = EXCLUDED.actividades`,
		f.ID, f.Usuario, f.Sucursal, f.Fecha, f.Coordenadas, f.Lat, f.Lng, []byte(actividades),
	)
	if err != nil {
		return fmt.Errorf("guardar folio: %w", err)
	}
	return nil
}

// ActualizarCampos sobrescribe campos generales sueltos. Solo acepta los
// campos editables; una clave desconocida es un error de entrada.
func (r *FolioRepo) ActualizarCampos(id string, campos map[string]interface{}) error {
	columnas := map[string]string{
		"usuario":     "usuario",
		"sucursal":    "sucursal",
		"fecha":       "fecha",
		"coordenadas": "coordenadas",
	}
	set := ""
	args := []any{id}
	for campo, valor := range campos {
		col, ok := columnas[campo]
		if !ok {
			return domain.ErrEntradaInvalida
		}
		if set != "" {
			set += ", "
		}
		args = append(args, valor)
		set += fmt.Sprintf("%s = $%d", col, len(args))
	}
	if set == "" {
		return nil
	}
	tag, err := r.q.Exec(context.Background(), `UPDATE folios SET `+set+` WHERE id = $1`, args...)
	if err != nil {
		return fmt.Errorf("actualizar folio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// GuardarActividad escribe una hoja bajo su ruta dentro de actividades sin
// reescribir las hermanas. Con ruta de dos niveles el padre se crea vacío si
// no existe; la escritura es un solo UPDATE, de modo que hojas distintas no
// se pisan entre clientes concurrentes.
func (r *FolioRepo) GuardarActividad(id string, ruta []string, hoja json.RawMessage) error {
	var query string
	var args []any
	switch len(ruta) {
	case 1:
		query = `
			UPDATE folios
			SET actividades = jsonb_set(actividades, ARRAY[$2], $3::jsonb, true)
			WHERE id = $1`
		args = []any{id, ruta[0], []byte(hoja)}
	case 2:
		query = `
			UPDATE folios
			SET actividades = jsonb_set(
				jsonb_set(actividades, ARRAY[$2], COALESCE(actividades->$2, '{}'::jsonb), true),
				ARRAY[$2, $3], $4::jsonb, true)
			WHERE id = $1`
		args = []any{id, ruta[0], ruta[1], []byte(hoja)}
	default:
		return domain.ErrEntradaInvalida
	}
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("guardar actividad: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// ObtenerPorID obtiene un folio por id.
func (r *FolioRepo) ObtenerPorID(id string) (*entity.Folio, error) {
	var f entity.Folio
	var actividades []byte
	err := r.q.QueryRow(context.Background(), `
		SELECT id, usuario, sucursal, fecha, coordenadas, lat, lng, actividades
		FROM folios WHERE id = $1`, id,
	).Scan(&f.ID, &f.Usuario, &f.Sucursal, &f.Fecha, &f.Coordenadas, &f.Lat, &f.Lng, &actividades)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener folio: %w", err)
	}
	f.Actividades = actividades
	return &f, nil
}

// Listar devuelve todos los folios. El filtrado es del dominio: los criterios
// (prefijos de fecha, dueño por nombre o email) trabajan sobre la forma
// histórica de los datos y no se expresan bien en SQL.
func (r *FolioRepo) Listar() ([]*entity.Folio, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, usuario, sucursal, fecha, coordenadas, lat, lng, actividades
		FROM folios`)
	if err != nil {
		return nil, fmt.Errorf("listar folios: %w", err)
	}
	defer rows.Close()

	var out []*entity.Folio
	for rows.Next() {
		var f entity.Folio
		var actividades []byte
		if err := rows.Scan(&f.ID, &f.Usuario, &f.Sucursal, &f.Fecha, &f.Coordenadas, &f.Lat, &f.Lng, &actividades); err != nil {
			return nil, fmt.Errorf("scan folio: %w", err)
		}
		f.Actividades = actividades
		out = append(out, &f)
	}
	return out, rows.Err()
}

// Eliminar borra un folio.
func (r *FolioRepo) Eliminar(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM folios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar folio: %w", err)
	}
	return nil
}
