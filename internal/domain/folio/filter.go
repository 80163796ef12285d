package folio

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heliosapp/helios-api/internal/domain/entity"
)

// Filtro describe los criterios de búsqueda sobre folios. Los campos vacíos no
// filtran. Las fechas son prefijos YYYY-MM-DD y el rango es inclusivo en ambos
// extremos; la comparación es lexicográfica sobre el prefijo corto de la fecha
// almacenada, lo que para este formato coincide con el orden cronológico.
type Filtro struct {
	Desde    string
	Hasta    string
	Sucursal string
	// Propietario y Email se comparan ambos contra el campo usuario del
	// folio, que según la ruta de escritura que lo creó guarda el nombre
	// visible o el email. Basta con que uno coincida.
	Propietario string
	Email       string
}

// Coincide evalúa el filtro sobre un folio.
func (fl Filtro) Coincide(f *entity.Folio) bool {
	fecha := f.FechaCorta()
	if fl.Desde != "" && fecha < fl.Desde {
		return false
	}
	if fl.Hasta != "" && fecha > fl.Hasta {
		return false
	}
	if fl.Sucursal != "" && !strings.EqualFold(f.Sucursal, fl.Sucursal) {
		return false
	}
	if fl.Propietario != "" || fl.Email != "" {
		nombre := fl.Propietario != "" && strings.EqualFold(f.Usuario, fl.Propietario)
		email := fl.Email != "" && strings.EqualFold(f.Usuario, fl.Email)
		if !nombre && !email {
			return false
		}
	}
	return true
}

// Filtrar devuelve los folios que cumplen el filtro, ordenados por fecha
// descendente (más recientes primero) y por id descendente a igualdad de
// fecha, que para ids push coincide con el orden de creación.
func Filtrar(folios []*entity.Folio, fl Filtro) []*entity.Folio {
	out := make([]*entity.Folio, 0, len(folios))
	for _, f := range folios {
		if fl.Coincide(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Fecha != out[j].Fecha {
			return out[i].Fecha > out[j].Fecha
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Estadisticas son los contadores agregados que alimentan el tablero.
type Estadisticas struct {
	Total        int            `json:"total"`
	Hoy          int            `json:"hoy"`
	Promedio     float64        `json:"promedio"`
	PorSucursal  map[string]int `json:"porSucursal"`
	PorUsuario   map[string]int `json:"porUsuario"`
	PorDia       map[string]int `json:"porDia"`
	PorActividad map[string]int `json:"porActividad"`
}

// Calcular recorre folios ya filtrados y produce las estadísticas del tablero.
// hoy es la fecha YYYY-MM-DD contra la que se cuenta el contador "hoy". El
// promedio global promedia los promedios por folio (no las hojas), igual que
// el tablero histórico.
func Calcular(folios []*entity.Folio, hoy string) Estadisticas {
	est := Estadisticas{
		PorSucursal:  make(map[string]int),
		PorUsuario:   make(map[string]int),
		PorDia:       make(map[string]int),
		PorActividad: make(map[string]int),
	}
	sumaPromedios := 0.0
	conPromedio := 0
	for _, f := range folios {
		est.Total++
		if f.FechaCorta() == hoy {
			est.Hoy++
		}
		if f.Sucursal != "" {
			est.PorSucursal[f.Sucursal]++
		}
		if f.Usuario != "" {
			est.PorUsuario[f.Usuario]++
		}
		if d := f.FechaCorta(); d != "" {
			est.PorDia[d]++
		}
		agg := AgregarFolio(f)
		if agg.Evaluadas > 0 {
			sumaPromedios += agg.Promedio
			conPromedio++
		}
		for _, cat := range agg.Categorias {
			for _, sub := range cat.Sub {
				clave := sub.Clave
				if cat.Clave != "" {
					clave = cat.Clave + "/" + sub.Clave
				}
				est.PorActividad[clave]++
			}
		}
	}
	if conPromedio > 0 {
		est.Promedio = redondear1(sumaPromedios / float64(conPromedio))
	}
	return est
}

func redondear1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}
