package usecase

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/entity"
	"github.com/heliosapp/helios-api/internal/domain/repository"
)

// UserUseCase administración de cuentas: listado, activación y roles
// pre-asignados para emails que todavía no tienen cuenta.
type UserUseCase struct {
	repo repository.UsuarioRepository
	log  zerolog.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UsuarioRepository, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// Listar devuelve todas las cuentas ordenadas por email.
func (uc *UserUseCase) Listar() ([]dto.UsuarioInfo, error) {
	usuarios, err := uc.repo.Listar()
	if err != nil {
		return nil, err
	}
	sort.Slice(usuarios, func(i, j int) bool { return usuarios[i].Email < usuarios[j].Email })
	out := make([]dto.UsuarioInfo, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, dto.UsuarioInfo{
			UID:    u.UID,
			Email:  u.Email,
			Nombre: u.Nombre,
			Rol:    u.Rol,
			Activo: u.Activo,
		})
	}
	return out, nil
}

// Obtener devuelve una cuenta por uid.
func (uc *UserUseCase) Obtener(uid string) (*dto.UsuarioInfo, error) {
	u, err := uc.repo.ObtenerPorUID(uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	return &dto.UsuarioInfo{
		UID:    u.UID,
		Email:  u.Email,
		Nombre: u.Nombre,
		Rol:    u.Rol,
		Activo: u.Activo,
	}, nil
}

// SetActivo habilita o deshabilita una cuenta. Deshabilitar no borra nada:
// la cuenta deja de poder iniciar sesión y sus datos quedan intactos.
func (uc *UserUseCase) SetActivo(uid string, activo bool) error {
	u, err := uc.repo.ObtenerPorUID(uid)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUsuarioNoEncontrado
	}
	if u.Activo == activo {
		return nil
	}
	u.Activo = activo
	if err := uc.repo.Actualizar(u); err != nil {
		return err
	}
	uc.log.Info().Str("uid", uid).Bool("activo", activo).Msg("cuenta actualizada")
	return nil
}

// AsignarRolPendiente deja un rol esperando bajo la clave del email. Si la
// cuenta ya existe, el rol se aplica directo en lugar de quedar pendiente.
func (uc *UserUseCase) AsignarRolPendiente(email, rol string) error {
	if rol != entity.RolAdmin && rol != entity.RolEncargado {
		return domain.ErrEntradaInvalida
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if u, _ := uc.repo.ObtenerPorEmail(email); u != nil {
		if u.Rol == rol {
			return nil
		}
		u.Rol = rol
		return uc.repo.Actualizar(u)
	}
	return uc.repo.GuardarRolPendiente(entity.EmailClave(email), rol)
}
