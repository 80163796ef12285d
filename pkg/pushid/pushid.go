// Package pushid genera claves push únicas y ordenables cronológicamente,
// compatibles con el criterio de orden del árbol de documentos: ordenar las
// claves lexicográficamente equivale a ordenar los registros por fecha de
// inserción. Se implementan como ULID en minúsculas (base32 Crockford
// preserva el orden también en minúsculas).
package pushid

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New devuelve una nueva clave push. Dentro del mismo milisegundo las claves
// siguen siendo estrictamente crecientes gracias a la entropía monotónica.
func New() string {
	mu.Lock()
	defer mu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return strings.ToLower(id.String())
}

// Valid indica si s tiene forma de clave push generada por este paquete.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(strings.ToUpper(s))
	return err == nil
}
