package repository

// UbicacionRepository define el puerto de persistencia para el catálogo de
// sucursales (DIP). Las ubicaciones se guardan por nombre; no llevan más
// campos que la clave.
type UbicacionRepository interface {
	Guardar(nombre string) error
	Listar() ([]string, error)
	Eliminar(nombre string) error
}
