// Package taxonomy modela el árbol de categorías y subactividades que los
// administradores mantienen en /actividades. El formato persistido arrastra
// dos formas históricas por cada categoría:
//
//	"limpieza": true                                  (legado: la categoría es hoja)
//	"limpieza": {"activo": true, "pisos": true, ...}  (actual: con subactividades)
//
// En memoria ambas se normalizan a Categoria{Activa, Sub, Legado}; la forma
// sobrecargada solo sobrevive en la frontera de (de)serialización.
package taxonomy

import (
	"encoding/json"
	"sort"
	"strings"
)

// ClaveActivo es la clave reservada que dentro de una categoría-objeto actúa
// como bandera de activación y nunca como subactividad.
const ClaveActivo = "activo"

// Categoria es la representación normalizada de una entrada de /actividades.
type Categoria struct {
	Activa bool
	// Sub contiene las subactividades por clave normalizada. Vacío en
	// categorías legado, donde la categoría misma es la hoja.
	Sub map[string]bool
	// Legado marca las categorías guardadas como boolean plano. Se conserva
	// para reserializarlas en su forma original.
	Legado bool
}

// Taxonomia es el árbol completo, indexado por clave de categoría.
type Taxonomia map[string]Categoria

// NormalizarClave baja a minúsculas y recorta espacios; todas las claves de
// categoría y subactividad pasan por aquí antes de usarse.
func NormalizarClave(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// UnmarshalJSON acepta las dos formas persistidas de una categoría.
// Cualquier clave distinta de "activo" dentro del objeto es una subactividad
// (su existencia es lo que importa, no el valor). La ausencia de "activo" se
// interpreta como activa: el formato falla abierto, no cerrado.
func (c *Categoria) UnmarshalJSON(data []byte) error {
	var legado bool
	if err := json.Unmarshal(data, &legado); err == nil {
		*c = Categoria{Activa: legado, Legado: true}
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	cat := Categoria{Activa: true, Sub: make(map[string]bool, len(obj))}
	for clave, valor := range obj {
		if clave == ClaveActivo {
			var activo bool
			if err := json.Unmarshal(valor, &activo); err == nil && !activo {
				cat.Activa = false
			}
			continue
		}
		cat.Sub[NormalizarClave(clave)] = true
	}
	*c = cat
	return nil
}

// MarshalJSON reserializa la categoría en su forma de origen: boolean plano
// para las legado, objeto con bandera "activo" para el resto.
func (c Categoria) MarshalJSON() ([]byte, error) {
	if c.Legado {
		return json.Marshal(c.Activa)
	}
	obj := make(map[string]interface{}, len(c.Sub)+1)
	obj[ClaveActivo] = c.Activa
	for sub := range c.Sub {
		obj[sub] = true
	}
	return json.Marshal(obj)
}

// Subactividades devuelve las claves de subactividad ordenadas.
func (c Categoria) Subactividades() []string {
	claves := make([]string, 0, len(c.Sub))
	for s := range c.Sub {
		claves = append(claves, s)
	}
	sort.Strings(claves)
	return claves
}

// Clone devuelve una copia profunda de la categoría.
func (c Categoria) Clone() Categoria {
	out := Categoria{Activa: c.Activa, Legado: c.Legado}
	if c.Sub != nil {
		out.Sub = make(map[string]bool, len(c.Sub))
		for k, v := range c.Sub {
			out.Sub[k] = v
		}
	}
	return out
}

// Activas devuelve el sub-árbol de categorías activas. Las subactividades no
// llevan bandera propia: pertenecer a una categoría activa las hace visibles.
func (t Taxonomia) Activas() Taxonomia {
	out := make(Taxonomia, len(t))
	for clave, cat := range t {
		if cat.Activa {
			out[clave] = cat.Clone()
		}
	}
	return out
}

// Claves devuelve las claves de categoría ordenadas.
func (t Taxonomia) Claves() []string {
	claves := make([]string, 0, len(t))
	for c := range t {
		claves = append(claves, c)
	}
	sort.Strings(claves)
	return claves
}

// EsPlana indica si toda la taxonomía es de forma legado (categorías hoja sin
// subactividades). Un folio creado bajo una taxonomía plana se escribe en la
// forma plana {actividad: {puntuacion,...}}.
func (t Taxonomia) EsPlana() bool {
	if len(t) == 0 {
		return true
	}
	for _, cat := range t {
		if !cat.Legado && len(cat.Sub) > 0 {
			return false
		}
	}
	return true
}
