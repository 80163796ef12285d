package repository

import "github.com/heliosapp/helios-api/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	Crear(u *entity.Usuario) error
	ObtenerPorUID(uid string) (*entity.Usuario, error)
	ObtenerPorEmail(email string) (*entity.Usuario, error)
	Actualizar(u *entity.Usuario) error
	Listar() ([]*entity.Usuario, error)

	// Roles pre-asignados: un admin puede dejar un rol esperando bajo la
	// clave derivada del email antes de que la cuenta exista. Se consume en
	// el primer login.
	GuardarRolPendiente(emailClave, rol string) error
	ObtenerRolPendiente(emailClave string) (string, error)
	EliminarRolPendiente(emailClave string) error
}
