package dto

// RegistroRequest alta de cuenta.
type RegistroRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Nombre   string `json:"nombre" validate:"required,min=2"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido y perfil básico.
type LoginResponse struct {
	Token   string      `json:"token"`
	Usuario UsuarioInfo `json:"usuario"`
}

// UsuarioInfo perfil público de una cuenta.
type UsuarioInfo struct {
	UID    string `json:"uid"`
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
	Activo bool   `json:"activo"`
}

// AsignarRolRequest deja un rol pre-asignado para un email aún sin cuenta.
type AsignarRolRequest struct {
	Email string `json:"email" validate:"required,email"`
	Rol   string `json:"rol" validate:"required,oneof=admin encargado"`
}

// ActivarUsuarioRequest habilita o deshabilita una cuenta.
type ActivarUsuarioRequest struct {
	Activo *bool `json:"activo" validate:"required"`
}
