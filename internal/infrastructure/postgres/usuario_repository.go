package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/entity"
	"github.com/heliosapp/helios-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL, incluidas
// las pre-asignaciones de rol por email.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Crear inserta la cuenta. El email es único.
func (r *UsuarioRepo) Crear(u *entity.Usuario) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO usuarios (uid, email, nombre, rol, activo, password_hash, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.UID, u.Email, u.Nombre, u.Rol, u.Activo, u.PasswordHash, u.CreadoEn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailRegistrado
		}
		return fmt.Errorf("crear usuario: %w", err)
	}
	return nil
}

// ObtenerPorUID obtiene una cuenta por uid.
func (r *UsuarioRepo) ObtenerPorUID(uid string) (*entity.Usuario, error) {
	return r.obtener(`WHERE uid = $1`, uid)
}

// ObtenerPorEmail obtiene una cuenta por email.
func (r *UsuarioRepo) ObtenerPorEmail(email string) (*entity.Usuario, error) {
	return r.obtener(`WHERE email = $1`, email)
}

func (r *UsuarioRepo) obtener(where string, arg any) (*entity.Usuario, error) {
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), `
		SELECT uid, email, nombre, rol, activo, password_hash, creado_en
		FROM usuarios `+where, arg,
	).Scan(&u.UID, &u.Email, &u.Nombre, &u.Rol, &u.Activo, &u.PasswordHash, &u.CreadoEn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	return &u, nil
}

// Actualizar sobrescribe nombre, rol y activo de la cuenta.
func (r *UsuarioRepo) Actualizar(u *entity.Usuario) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE usuarios SET nombre = $2, rol = $3, activo = $4 WHERE uid = $1`,
		u.UID, u.Nombre, u.Rol, u.Activo,
	)
	if err != nil {
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUsuarioNoEncontrado
	}
	return nil
}

// Listar devuelve todas las cuentas.
func (r *UsuarioRepo) Listar() ([]*entity.Usuario, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT uid, email, nombre, rol, activo, password_hash, creado_en FROM usuarios`)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	defer rows.Close()

	var out []*entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		if err := rows.Scan(&u.UID, &u.Email, &u.Nombre, &u.Rol, &u.Activo, &u.PasswordHash, &u.CreadoEn); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// GuardarRolPendiente deja un rol esperando bajo la clave del email (upsert).
func (r *UsuarioRepo) GuardarRolPendiente(emailClave, rol string) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO roles_asignados (email_clave, rol) VALUES ($1, $2)
		ON CONFLICT (email_clave) DO UPDATE SET rol = EXCLUDED.rol`,
		emailClave, rol,
	)
	if err != nil {
		return fmt.Errorf("guardar rol pendiente: %w", err)
	}
	return nil
}

// ObtenerRolPendiente lee el rol esperando para la clave, vacío si no hay.
func (r *UsuarioRepo) ObtenerRolPendiente(emailClave string) (string, error) {
	var rol string
	err := r.q.QueryRow(context.Background(),
		`SELECT rol FROM roles_asignados WHERE email_clave = $1`, emailClave,
	).Scan(&rol)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("obtener rol pendiente: %w", err)
	}
	return rol, nil
}

// EliminarRolPendiente borra la pre-asignación ya consumida.
func (r *UsuarioRepo) EliminarRolPendiente(emailClave string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM roles_asignados WHERE email_clave = $1`, emailClave)
	if err != nil {
		return fmt.Errorf("eliminar rol pendiente: %w", err)
	}
	return nil
}
