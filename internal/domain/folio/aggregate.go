// Package folio contiene la lógica pura sobre folios de inspección: la
// agregación de puntuaciones sobre el árbol de actividades (en sus dos formas
// históricas) y el filtrado que consumen los reportes.
package folio

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/heliosapp/helios-api/internal/domain/entity"
	"github.com/heliosapp/helios-api/internal/domain/taxonomy"
)

// SubPuntaje es la hoja normalizada de la agregación.
type SubPuntaje struct {
	Clave      string   `json:"clave"`
	Puntuacion float64  `json:"puntuacion"`
	Comentario string   `json:"comentario,omitempty"`
	Fotos      []string `json:"fotos,omitempty"`
}

// CategoriaAgregada es el resultado por categoría. El promedio se calcula solo
// con las sub-entradas propias, nunca con las de categorías hermanas.
type CategoriaAgregada struct {
	Clave     string       `json:"clave"`
	Promedio  float64      `json:"promedio"`
	Evaluadas int          `json:"evaluadas"`
	Sub       []SubPuntaje `json:"sub"`
}

// Agregado es el resultado completo de agregar un folio.
type Agregado struct {
	Promedio   float64             `json:"promedio"`
	Evaluadas  int                 `json:"evaluadas"`
	Categorias []CategoriaAgregada `json:"categorias"`
}

// Agregar calcula promedios y conteos sobre el árbol de actividades de un
// folio, aceptando las dos formas congeladas en datos históricos:
//
//   - plana:   {"limpieza": {"puntuacion": 9, ...}, "atencion": {...}}
//   - anidada: {"limpieza": {"pisos": {"puntuacion": 8, ...}, ...}, ...}
//
// La forma se detecta estructuralmente: si el valor de una entrada contiene la
// clave "puntuacion" el mapa es plano y se trata como una única categoría sin
// nombre. En la forma anidada, cualquier clave literal "activo" es metadato de
// taxonomía arrastrado y se omite en todos los niveles. Una puntuación ausente
// o no numérica cuenta como 0. Con cero entradas evaluadas el promedio es 0,
// nunca NaN.
func Agregar(actividades json.RawMessage) Agregado {
	var arbol map[string]json.RawMessage
	if len(actividades) == 0 || json.Unmarshal(actividades, &arbol) != nil || len(arbol) == 0 {
		return Agregado{Categorias: []CategoriaAgregada{}}
	}

	if esPlano(arbol) {
		cat := agregarCategoria("", arbol)
		return Agregado{
			Promedio:   cat.Promedio,
			Evaluadas:  cat.Evaluadas,
			Categorias: []CategoriaAgregada{cat},
		}
	}

	agg := Agregado{Categorias: make([]CategoriaAgregada, 0, len(arbol))}
	suma := 0.0
	for _, claveCat := range clavesOrdenadas(arbol) {
		if claveCat == taxonomy.ClaveActivo {
			continue
		}
		var subArbol map[string]json.RawMessage
		if json.Unmarshal(arbol[claveCat], &subArbol) != nil {
			// Valor escalar dentro de forma anidada: dato corrupto, se omite.
			continue
		}
		cat := agregarCategoria(claveCat, subArbol)
		agg.Categorias = append(agg.Categorias, cat)
		agg.Evaluadas += cat.Evaluadas
		for _, s := range cat.Sub {
			suma += s.Puntuacion
		}
	}
	agg.Promedio = promedio(suma, agg.Evaluadas)
	return agg
}

// AgregarFolio es el atajo sobre la entidad.
func AgregarFolio(f *entity.Folio) Agregado {
	if f == nil {
		return Agregado{Categorias: []CategoriaAgregada{}}
	}
	return Agregar(f.Actividades)
}

// agregarCategoria agrega un mapa hoja {clave: {puntuacion,...}}.
func agregarCategoria(clave string, arbol map[string]json.RawMessage) CategoriaAgregada {
	cat := CategoriaAgregada{Clave: clave, Sub: make([]SubPuntaje, 0, len(arbol))}
	suma := 0.0
	for _, sub := range clavesOrdenadas(arbol) {
		if sub == taxonomy.ClaveActivo {
			continue
		}
		reg := decodificarRegistro(arbol[sub])
		cat.Sub = append(cat.Sub, SubPuntaje{
			Clave:      sub,
			Puntuacion: reg.puntuacion,
			Comentario: reg.comentario,
			Fotos:      reg.fotos,
		})
		suma += reg.puntuacion
		cat.Evaluadas++
	}
	cat.Promedio = promedio(suma, cat.Evaluadas)
	return cat
}

// esPlano muestrea una entrada del mapa: si su valor contiene "puntuacion"
// directamente, todo el mapa es de forma plana.
func esPlano(arbol map[string]json.RawMessage) bool {
	for clave, valor := range arbol {
		if clave == taxonomy.ClaveActivo {
			continue
		}
		var entrada map[string]json.RawMessage
		if json.Unmarshal(valor, &entrada) != nil {
			// Escalar al primer nivel: solo ocurre en datos corruptos; la
			// rama plana los tolera mejor (puntuación 0).
			return true
		}
		_, tiene := entrada["puntuacion"]
		return tiene
	}
	return false
}

type registro struct {
	puntuacion float64
	comentario string
	fotos      []string
}

// decodificarRegistro lee una hoja {puntuacion, comentario, fotos} tolerando
// puntuaciones numéricas, en texto, ausentes o corruptas (todas esas → 0).
func decodificarRegistro(raw json.RawMessage) registro {
	var hoja struct {
		Puntuacion json.RawMessage `json:"puntuacion"`
		Comentario string          `json:"comentario"`
		Fotos      []string        `json:"fotos"`
	}
	if json.Unmarshal(raw, &hoja) != nil {
		return registro{}
	}
	return registro{
		puntuacion: parsePuntuacion(hoja.Puntuacion),
		comentario: hoja.Comentario,
		fotos:      hoja.Fotos,
	}
}

// parsePuntuacion replica el parseFloat(x || 0) del cliente original: número,
// string numérico o 0 en cualquier otro caso. Una puntuación fraccionaria de
// datos históricos entra a la suma sin truncar.
func parsePuntuacion(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

// promedio divide suma/conteo redondeando a un decimal (mitad hacia arriba,
// igual que toFixed(1)). Con conteo 0 devuelve 0: nunca se divide por cero.
func promedio(suma float64, conteo int) float64 {
	if conteo == 0 {
		return 0
	}
	p := decimal.NewFromFloat(suma).
		DivRound(decimal.NewFromInt(int64(conteo)), 1)
	f, _ := p.Float64()
	return f
}

func clavesOrdenadas(m map[string]json.RawMessage) []string {
	claves := make([]string, 0, len(m))
	for k := range m {
		claves = append(claves, k)
	}
	sort.Strings(claves)
	return claves
}
