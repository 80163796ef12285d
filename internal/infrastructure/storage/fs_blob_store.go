// Package storage implementa el almacén de evidencia binaria sobre el
// sistema de archivos local, con URLs estables servidas como estáticos.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/heliosapp/helios-api/internal/application/ports"
)

var _ ports.BlobStore = (*FSBlobStore)(nil)

// FSBlobStore guarda blobs bajo dir/<carpeta>/<uuid>.<ext> y devuelve
// baseURL/<carpeta>/<uuid>.<ext>. El nombre aleatorio hace la URL estable e
// inadivinable; nunca se reescribe un objeto existente.
type FSBlobStore struct {
	dir     string
	baseURL string
}

// NewFSBlobStore construye el almacén sobre el directorio dado.
func NewFSBlobStore(dir, baseURL string) (*FSBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de blobs: %w", err)
	}
	return &FSBlobStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Subir persiste el contenido y devuelve su URL.
func (s *FSBlobStore) Subir(ctx context.Context, carpeta, ext string, contenido []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(contenido) == 0 {
		return "", fmt.Errorf("blob vacío")
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "bin"
	}
	nombre := uuid.New().String() + "." + ext

	destino := filepath.Join(s.dir, carpeta)
	if err := os.MkdirAll(destino, 0o755); err != nil {
		return "", fmt.Errorf("crear carpeta %q: %w", carpeta, err)
	}
	// Escritura vía archivo temporal y rename: un lector nunca ve un blob a
	// medio escribir.
	tmp, err := os.CreateTemp(destino, ".subida-*")
	if err != nil {
		return "", fmt.Errorf("crear temporal: %w", err)
	}
	if _, err := tmp.Write(contenido); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("escribir blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("cerrar blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(destino, nombre)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("publicar blob: %w", err)
	}
	return s.baseURL + "/" + carpeta + "/" + nombre, nil
}
