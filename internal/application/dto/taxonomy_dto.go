package dto

// CategoriaRequest crea una categoría nueva (con o sin subactividades).
type CategoriaRequest struct {
	Nombre string   `json:"nombre" validate:"required,min=1,max=80"`
	Sub    []string `json:"sub" validate:"dive,min=1,max=80"`
}

// RenombrarRequest renombra una categoría o subactividad.
type RenombrarRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=80"`
}

// SubactividadRequest agrega una subactividad a una categoría.
type SubactividadRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=80"`
}

// ActivarCategoriaRequest cambia la bandera de activación.
type ActivarCategoriaRequest struct {
	Activo *bool `json:"activo" validate:"required"`
}

// ActividadFiltroRequest criterios de listado del árbol (query string): texto
// libre sobre claves de categoría y subactividad, y estado de activación.
type ActividadFiltroRequest struct {
	Buscar string `query:"buscar"`
	Estado string `query:"estado" validate:"omitempty,oneof=activa inactiva"`
}

// CategoriaResponse una categoría normalizada para el cliente.
type CategoriaResponse struct {
	Clave  string   `json:"clave"`
	Activa bool     `json:"activa"`
	Sub    []string `json:"sub"`
	Legado bool     `json:"legado,omitempty"`
}
