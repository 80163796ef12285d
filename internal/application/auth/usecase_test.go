package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/heliosapp/helios-api/internal/application/auth"
	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/entity"
)

// usuariosFalsos implementa repository.UsuarioRepository en memoria y permite
// inyectar un fallo en la búsqueda por email.
type usuariosFalsos struct {
	porEmail   map[string]*entity.Usuario
	pendientes map[string]string
	fallaEmail error
	creados    int
}

func nuevosUsuariosFalsos() *usuariosFalsos {
	return &usuariosFalsos{
		porEmail:   make(map[string]*entity.Usuario),
		pendientes: make(map[string]string),
	}
}

func (r *usuariosFalsos) Crear(u *entity.Usuario) error {
	r.creados++
	copia := *u
	r.porEmail[u.Email] = &copia
	return nil
}

func (r *usuariosFalsos) ObtenerPorUID(uid string) (*entity.Usuario, error) {
	for _, u := range r.porEmail {
		if u.UID == uid {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *usuariosFalsos) ObtenerPorEmail(email string) (*entity.Usuario, error) {
	if r.fallaEmail != nil {
		return nil, r.fallaEmail
	}
	u, ok := r.porEmail[email]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func (r *usuariosFalsos) Actualizar(u *entity.Usuario) error {
	copia := *u
	r.porEmail[u.Email] = &copia
	return nil
}

func (r *usuariosFalsos) Listar() ([]*entity.Usuario, error) {
	out := make([]*entity.Usuario, 0, len(r.porEmail))
	for _, u := range r.porEmail {
		copia := *u
		out = append(out, &copia)
	}
	return out, nil
}

func (r *usuariosFalsos) GuardarRolPendiente(emailClave, rol string) error {
	r.pendientes[emailClave] = rol
	return nil
}

func (r *usuariosFalsos) ObtenerRolPendiente(emailClave string) (string, error) {
	return r.pendientes[emailClave], nil
}

func (r *usuariosFalsos) EliminarRolPendiente(emailClave string) error {
	delete(r.pendientes, emailClave)
	return nil
}

func nuevoAuthUC(repo *usuariosFalsos) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-pruebas",
		ExpMinutes: 60,
		Issuer:     "helios-test",
	})
}

func registroValido() dto.RegistroRequest {
	return dto.RegistroRequest{
		Nombre:   "Ana Pérez",
		Email:    "Ana.Perez@Acme.com",
		Password: "clave-segura",
	}
}

func TestRegistrar_NormalizaEmailYHashea(t *testing.T) {
	repo := nuevosUsuariosFalsos()
	uc := nuevoAuthUC(repo)

	info, err := uc.Registrar(registroValido())
	require.NoError(t, err)

	assert.Equal(t, "ana.perez@acme.com", info.Email)
	assert.Equal(t, entity.RolEncargado, info.Rol, "sin pre-asignación la cuenta nace encargado")
	assert.True(t, info.Activo)

	guardado := repo.porEmail["ana.perez@acme.com"]
	require.NotNil(t, guardado)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("clave-segura")))
}

func TestRegistrar_ConsumeRolPreAsignado(t *testing.T) {
	repo := nuevosUsuariosFalsos()
	clave := entity.EmailClave("ana.perez@acme.com")
	repo.pendientes[clave] = entity.RolAdmin
	uc := nuevoAuthUC(repo)

	info, err := uc.Registrar(registroValido())
	require.NoError(t, err)

	assert.Equal(t, entity.RolAdmin, info.Rol)
	assert.NotContains(t, repo.pendientes, clave, "la pre-asignación se consume al registrar")
}

func TestRegistrar_EmailYaRegistrado(t *testing.T) {
	repo := nuevosUsuariosFalsos()
	uc := nuevoAuthUC(repo)
	_, err := uc.Registrar(registroValido())
	require.NoError(t, err)

	_, err = uc.Registrar(registroValido())
	assert.ErrorIs(t, err, domain.ErrEmailRegistrado)
	assert.Equal(t, 1, repo.creados)
}

func TestRegistrar_FalloDeLecturaNoCreaLaCuenta(t *testing.T) {
	repo := nuevosUsuariosFalsos()
	repo.fallaEmail = errors.New("base caída")
	uc := nuevoAuthUC(repo)

	// Un fallo transitorio al consultar el email no puede leerse como "email
	// libre": se propaga y no se intenta crear nada.
	_, err := uc.Registrar(registroValido())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailRegistrado)
	assert.Zero(t, repo.creados)
}

func TestLogin_EmiteToken(t *testing.T) {
	repo := nuevosUsuariosFalsos()
	uc := nuevoAuthUC(repo)
	_, err := uc.Registrar(registroValido())
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: " ANA.PEREZ@acme.com ", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana.perez@acme.com", out.Usuario.Email)
}

func TestLogin_Rechazos(t *testing.T) {
	repo := nuevosUsuariosFalsos()
	uc := nuevoAuthUC(repo)
	_, err := uc.Registrar(registroValido())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@acme.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUsuarioNoEncontrado)

	_, err = uc.Login(dto.LoginRequest{Email: "ana.perez@acme.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrNoAutorizado)

	repo.porEmail["ana.perez@acme.com"].Activo = false
	_, err = uc.Login(dto.LoginRequest{Email: "ana.perez@acme.com", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrProhibido)
}
