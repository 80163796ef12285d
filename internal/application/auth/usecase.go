package auth

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/entity"
	"github.com/heliosapp/helios-api/internal/domain/repository"
	"github.com/heliosapp/helios-api/pkg/jwt"
	"github.com/heliosapp/helios-api/pkg/pushid"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login. En el registro
// se consume el rol pre-asignado si un admin dejó uno esperando para el email;
// sin pre-asignación la cuenta nace como encargado.
type AuthUseCase struct {
	usuarios repository.UsuarioRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarios repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarios: usuarios, jwtCfg: jwtCfg}
}

// Registrar crea una cuenta: hashea el password con bcrypt, resuelve el rol
// pre-asignado y persiste. Devuelve ErrEmailRegistrado si el email ya existe.
func (uc *AuthUseCase) Registrar(in dto.RegistroRequest) (*dto.UsuarioInfo, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existente, err := uc.usuarios.ObtenerPorEmail(email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrEmailRegistrado
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rol := entity.RolEncargado
	clave := entity.EmailClave(email)
	if pendiente, err := uc.usuarios.ObtenerRolPendiente(clave); err == nil && pendiente != "" {
		rol = pendiente
	}

	u := &entity.Usuario{
		UID:          pushid.New(),
		Email:        email,
		Nombre:       strings.TrimSpace(in.Nombre),
		Rol:          rol,
		Activo:       true,
		PasswordHash: string(hash),
		CreadoEn:     time.Now(),
	}
	if err := uc.usuarios.Crear(u); err != nil {
		return nil, err
	}
	// La pre-asignación ya se consumió; si el borrado falla solo queda un
	// residuo inofensivo que el próximo registro del mismo email ignorará.
	_ = uc.usuarios.EliminarRolPendiente(clave)
	return toUsuarioInfo(u), nil
}

// Login verifica email/password, exige cuenta activa y emite el token.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	u, err := uc.usuarios.ObtenerPorEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrNoAutorizado
	}
	if !u.Activo {
		return nil, domain.ErrProhibido
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.UID, u.Nombre, u.Email, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *toUsuarioInfo(u),
	}, nil
}

func toUsuarioInfo(u *entity.Usuario) *dto.UsuarioInfo {
	if u == nil {
		return nil
	}
	return &dto.UsuarioInfo{
		UID:    u.UID,
		Email:  u.Email,
		Nombre: u.Nombre,
		Rol:    u.Rol,
		Activo: u.Activo,
	}
}
