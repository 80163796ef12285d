// Package folio implementa el asistente paso a paso con el que un supervisor
// levanta un folio de inspección, las sesiones en curso y los casos de uso de
// consulta y edición sobre folios ya enviados.
package folio

import (
	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/taxonomy"
)

// ClaveGeneral es la subactividad implícita bajo la que se puntúa una
// categoría legado (hoja sin subactividades) dentro del asistente.
const ClaveGeneral = "general"

// captura es lo recogido para una subactividad durante la sesión. Las fotos
// se retienen en memoria y solo se suben al enviar.
type captura struct {
	Puntuacion int
	Comentario string
	Fotos      [][]byte
}

// Builder es la máquina de pasos de un folio en construcción. El paso 0 es la
// información general; los pasos 1..N recorren las categorías activas en
// orden de clave. La taxonomía queda congelada al abrir la sesión: cambios
// posteriores del árbol no afectan un folio a medio capturar.
//
// El Builder no es seguro para uso concurrente; Sessions serializa el acceso.
type Builder struct {
	Propietario string

	sucursal    string
	fecha       string
	coordenadas string
	lat, lng    *float64

	arbol   taxonomy.Taxonomia
	orden   []string // claves de categoría, una por paso
	datos   map[string]map[string]*captura
	paso    int
	enviado bool
}

// NewBuilder abre una sesión sobre una copia de las categorías activas.
func NewBuilder(propietario string, activas taxonomy.Taxonomia) *Builder {
	orden := activas.Claves()
	datos := make(map[string]map[string]*captura, len(orden))
	for _, cat := range orden {
		subs := activas[cat].Subactividades()
		if len(subs) == 0 {
			subs = []string{ClaveGeneral}
		}
		porSub := make(map[string]*captura, len(subs))
		for _, s := range subs {
			porSub[s] = &captura{}
		}
		datos[cat] = porSub
	}
	return &Builder{
		Propietario: propietario,
		arbol:       activas,
		orden:       orden,
		datos:       datos,
	}
}

// Paso devuelve el paso actual (0 = información general).
func (b *Builder) Paso() int { return b.paso }

// TotalPasos devuelve el número de pasos: el general más uno por categoría.
func (b *Builder) TotalPasos() int { return len(b.orden) + 1 }

// Enviado indica si la sesión ya se materializó en un folio.
func (b *Builder) Enviado() bool { return b.enviado }

// CategoriaActual devuelve la clave de la categoría del paso actual, o vacío
// en el paso general.
func (b *Builder) CategoriaActual() string {
	if b.paso == 0 || b.paso > len(b.orden) {
		return ""
	}
	return b.orden[b.paso-1]
}

// SetGeneral captura la información del paso 0. Solo es válido ahí: el folio
// no cambia de sucursal ni de fecha a mitad de captura.
func (b *Builder) SetGeneral(sucursal, fecha, coordenadas string, lat, lng *float64) error {
	if b.enviado {
		return domain.ErrFolioEnviado
	}
	if b.paso != 0 {
		return domain.ErrPasoInvalido
	}
	if sucursal == "" || len(fecha) < 10 {
		return domain.ErrEntradaInvalida
	}
	b.sucursal = sucursal
	b.fecha = fecha
	b.coordenadas = coordenadas
	b.lat, b.lng = lat, lng
	return nil
}

// SetPuntuacion puntúa una subactividad de la categoría del paso actual.
// Solo acepta 1..10: el 0 queda reservado a datos históricos sin puntuar.
func (b *Builder) SetPuntuacion(actividad string, puntuacion int) error {
	reg, err := b.capturaActual(actividad)
	if err != nil {
		return err
	}
	if puntuacion < 1 || puntuacion > 10 {
		return domain.ErrPuntuacionInvalida
	}
	reg.Puntuacion = puntuacion
	return nil
}

// SetComentario comenta una subactividad de la categoría del paso actual.
func (b *Builder) SetComentario(actividad, comentario string) error {
	reg, err := b.capturaActual(actividad)
	if err != nil {
		return err
	}
	reg.Comentario = comentario
	return nil
}

// AdjuntarFoto retiene una foto para la subactividad; se sube al enviar.
func (b *Builder) AdjuntarFoto(actividad string, foto []byte) error {
	reg, err := b.capturaActual(actividad)
	if err != nil {
		return err
	}
	if len(foto) == 0 {
		return domain.ErrEntradaInvalida
	}
	reg.Fotos = append(reg.Fotos, foto)
	return nil
}

func (b *Builder) capturaActual(actividad string) (*captura, error) {
	if b.enviado {
		return nil, domain.ErrFolioEnviado
	}
	cat := b.CategoriaActual()
	if cat == "" {
		return nil, domain.ErrPasoInvalido
	}
	clave := taxonomy.NormalizarClave(actividad)
	reg, ok := b.datos[cat][clave]
	if !ok {
		return nil, domain.ErrNoEncontrado
	}
	return reg, nil
}

// Avanzar pasa al paso siguiente. El paso general exige sucursal y fecha; un
// paso de categoría exige que todas sus subactividades estén puntuadas.
func (b *Builder) Avanzar() error {
	if b.enviado {
		return domain.ErrFolioEnviado
	}
	if b.paso >= b.TotalPasos()-1 {
		return domain.ErrPasoInvalido
	}
	if b.paso == 0 {
		if b.sucursal == "" || b.fecha == "" {
			return domain.ErrPasoIncompleto
		}
	} else {
		for _, reg := range b.datos[b.CategoriaActual()] {
			if reg.Puntuacion == 0 {
				return domain.ErrPasoIncompleto
			}
		}
	}
	b.paso++
	return nil
}

// Retroceder vuelve al paso anterior sin validar nada: lo capturado se
// conserva y puede corregirse.
func (b *Builder) Retroceder() error {
	if b.enviado {
		return domain.ErrFolioEnviado
	}
	if b.paso == 0 {
		return domain.ErrPasoInvalido
	}
	b.paso--
	return nil
}

// Completo indica si la sesión está en el último paso con todo puntuado.
func (b *Builder) Completo() bool {
	if b.sucursal == "" || b.fecha == "" {
		return false
	}
	if b.paso != b.TotalPasos()-1 {
		return false
	}
	for _, porSub := range b.datos {
		for _, reg := range porSub {
			if reg.Puntuacion == 0 {
				return false
			}
		}
	}
	return true
}

// esPlano indica si el folio debe escribirse en forma plana: solo cuando
// todas las categorías de la sesión son legado. Con una sola categoría
// moderna el folio entero va anidado y las legado se escriben bajo su
// subactividad implícita.
func (b *Builder) esPlano() bool {
	return b.arbol.EsPlana() && len(b.orden) > 0
}
