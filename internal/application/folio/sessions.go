package folio

import (
	"sync"

	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/pkg/pushid"
)

// Sessions guarda los asistentes en curso, indexados por id de sesión. Cada
// sesión pertenece a un usuario; nadie más puede tocarla. Las sesiones viven
// solo en memoria: un reinicio del proceso las descarta, igual que cerrar la
// aplicación descartaba un folio a medio capturar.
type Sessions struct {
	mu       sync.Mutex
	sesiones map[string]*Builder
}

// NewSessions construye el almacén de sesiones.
func NewSessions() *Sessions {
	return &Sessions{sesiones: make(map[string]*Builder)}
}

// Abrir registra un builder nuevo y devuelve su id de sesión.
func (s *Sessions) Abrir(b *Builder) string {
	id := pushid.New()
	s.mu.Lock()
	s.sesiones[id] = b
	s.mu.Unlock()
	return id
}

// Con ejecuta fn sobre la sesión del propietario, bajo el candado del
// almacén. Devuelve ErrNoEncontrado si la sesión no existe y ErrProhibido si
// pertenece a otro usuario.
func (s *Sessions) Con(id, propietario string, fn func(*Builder) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.sesiones[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	if b.Propietario != propietario {
		return domain.ErrProhibido
	}
	return fn(b)
}

// Cerrar descarta una sesión (tras enviar o al abandonar).
func (s *Sessions) Cerrar(id, propietario string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.sesiones[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	if b.Propietario != propietario {
		return domain.ErrProhibido
	}
	delete(s.sesiones, id)
	return nil
}
