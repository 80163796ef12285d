package dto

// UbicacionRequest alta de una sucursal en el catálogo.
type UbicacionRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=120"`
}
