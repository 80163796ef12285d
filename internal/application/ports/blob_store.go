package ports

import "context"

// BlobStore define el puerto de salida para almacenar evidencia binaria
// (fotos de inspección, de cumplimiento y de asistencia). El adaptador
// concreto (disco, bucket, mock) implementa esta interfaz; la aplicación solo
// conoce el contrato (DIP).
type BlobStore interface {
	// Subir persiste el contenido bajo la carpeta lógica dada y devuelve una
	// URL estable para recuperarlo. El nombre final del objeto lo decide el
	// adaptador; ext es la extensión sugerida ("jpg", "png").
	Subir(ctx context.Context, carpeta, ext string, contenido []byte) (string, error)
}
