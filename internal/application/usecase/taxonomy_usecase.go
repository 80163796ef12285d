package usecase

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/heliosapp/helios-api/internal/application/dto"
	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/repository"
	"github.com/heliosapp/helios-api/internal/domain/taxonomy"
)

// TaxonomyUseCase mantiene el árbol de actividades y lo expone como almacén
// observable: los suscriptores (el asistente de folios, el tablero) reciben
// una copia del árbol tras cada mutación. El árbol completo se mantiene en
// memoria bajo candado; el repositorio es la fuente al arrancar y el destino
// de cada escritura.
type TaxonomyUseCase struct {
	repo repository.TaxonomyRepository
	log  zerolog.Logger

	mu     sync.RWMutex
	arbol  taxonomy.Taxonomia
	subsID int
	subs   map[int]func(taxonomy.Taxonomia)

	// Entrega serializada: las mutaciones dejan su copia en pendiente y un
	// único despachador la reparte, siempre la más reciente.
	pendiente taxonomy.Taxonomia
	despertar chan struct{}
}

// NewTaxonomyUseCase construye el caso de uso cargando el árbol persistido.
func NewTaxonomyUseCase(repo repository.TaxonomyRepository, log zerolog.Logger) (*TaxonomyUseCase, error) {
	arbol, err := repo.Cargar()
	if err != nil {
		return nil, err
	}
	if arbol == nil {
		arbol = make(taxonomy.Taxonomia)
	}
	uc := &TaxonomyUseCase{
		repo:      repo,
		log:       log,
		arbol:     arbol,
		subs:      make(map[int]func(taxonomy.Taxonomia)),
		despertar: make(chan struct{}, 1),
	}
	go uc.despachar()
	return uc, nil
}

// Suscribir registra un observador que recibe una copia del árbol tras cada
// mutación. Devuelve la función de cancelación.
func (uc *TaxonomyUseCase) Suscribir(fn func(taxonomy.Taxonomia)) func() {
	uc.mu.Lock()
	uc.subsID++
	id := uc.subsID
	uc.subs[id] = fn
	uc.mu.Unlock()
	return func() {
		uc.mu.Lock()
		delete(uc.subs, id)
		uc.mu.Unlock()
	}
}

// notificar se llama con el candado tomado: deja la copia del árbol como
// pendiente y despierta al despachador sin bloquear. Dos mutaciones seguidas
// se funden en una sola entrega con la copia más reciente; un suscriptor nunca
// recibe un árbol viejo después de uno nuevo.
func (uc *TaxonomyUseCase) notificar() {
	uc.pendiente = uc.snapshotLocked()
	select {
	case uc.despertar <- struct{}{}:
	default:
	}
}

// despachar es el único repartidor de avisos: toma la copia pendiente y la
// entrega a los suscriptores fuera del candado, en orden de mutación.
func (uc *TaxonomyUseCase) despachar() {
	for range uc.despertar {
		uc.mu.Lock()
		copia := uc.pendiente
		uc.pendiente = nil
		fns := make([]func(taxonomy.Taxonomia), 0, len(uc.subs))
		for _, fn := range uc.subs {
			fns = append(fns, fn)
		}
		uc.mu.Unlock()
		if copia == nil {
			continue
		}
		for _, fn := range fns {
			fn(copia)
		}
	}
}

func (uc *TaxonomyUseCase) snapshotLocked() taxonomy.Taxonomia {
	copia := make(taxonomy.Taxonomia, len(uc.arbol))
	for clave, cat := range uc.arbol {
		copia[clave] = cat.Clone()
	}
	return copia
}

// Arbol devuelve una copia del árbol completo.
func (uc *TaxonomyUseCase) Arbol() taxonomy.Taxonomia {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.snapshotLocked()
}

// Activas devuelve una copia solo con las categorías activas.
func (uc *TaxonomyUseCase) Activas() taxonomy.Taxonomia {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.snapshotLocked().Activas()
}

// Listar devuelve el árbol como DTOs ordenados por clave, incluyendo las
// categorías inactivas. El filtro de texto busca en claves de categoría y de
// subactividad; el de estado deja solo activas o inactivas.
func (uc *TaxonomyUseCase) Listar(in dto.ActividadFiltroRequest) []dto.CategoriaResponse {
	arbol := uc.Arbol()
	buscar := taxonomy.NormalizarClave(in.Buscar)
	out := make([]dto.CategoriaResponse, 0, len(arbol))
	for _, clave := range arbol.Claves() {
		cat := arbol[clave]
		if in.Estado == "activa" && !cat.Activa {
			continue
		}
		if in.Estado == "inactiva" && cat.Activa {
			continue
		}
		if buscar != "" && !coincideBusqueda(clave, cat, buscar) {
			continue
		}
		out = append(out, dto.CategoriaResponse{
			Clave:  clave,
			Activa: cat.Activa,
			Sub:    cat.Subactividades(),
			Legado: cat.Legado,
		})
	}
	return out
}

func coincideBusqueda(clave string, cat taxonomy.Categoria, buscar string) bool {
	if strings.Contains(clave, buscar) {
		return true
	}
	for sub := range cat.Sub {
		if strings.Contains(sub, buscar) {
			return true
		}
	}
	return false
}

// CrearCategoria agrega una categoría nueva, con subactividades opcionales.
// Los nombres se normalizan; "activo" está reservado y no puede ser clave ni
// de categoría ni de subactividad.
func (uc *TaxonomyUseCase) CrearCategoria(nombre string, subs []string) error {
	clave := taxonomy.NormalizarClave(nombre)
	if clave == "" {
		return domain.ErrEntradaInvalida
	}
	if clave == taxonomy.ClaveActivo {
		return domain.ErrClaveReservada
	}
	cat := taxonomy.Categoria{Activa: true, Sub: make(map[string]bool, len(subs))}
	for _, s := range subs {
		sc := taxonomy.NormalizarClave(s)
		if sc == "" {
			continue
		}
		if sc == taxonomy.ClaveActivo {
			return domain.ErrClaveReservada
		}
		cat.Sub[sc] = true
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, existe := uc.arbol[clave]; existe {
		return domain.ErrDuplicado
	}
	if err := uc.repo.GuardarCategoria(clave, cat); err != nil {
		return err
	}
	uc.arbol[clave] = cat
	uc.log.Info().Str("categoria", clave).Int("sub", len(cat.Sub)).Msg("categoría creada")
	uc.notificar()
	return nil
}

// RenombrarCategoria mueve la categoría a una clave nueva copiándola completa
// y borrando después la original. Si ambas claves normalizan a lo mismo no
// hay nada que hacer. El destino no puede existir ya.
func (uc *TaxonomyUseCase) RenombrarCategoria(actual, nuevo string) error {
	origen := taxonomy.NormalizarClave(actual)
	destino := taxonomy.NormalizarClave(nuevo)
	if destino == "" {
		return domain.ErrEntradaInvalida
	}
	if destino == taxonomy.ClaveActivo {
		return domain.ErrClaveReservada
	}
	if origen == destino {
		return nil
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	cat, existe := uc.arbol[origen]
	if !existe {
		return domain.ErrNoEncontrado
	}
	if _, ocupado := uc.arbol[destino]; ocupado {
		return domain.ErrDuplicado
	}
	// Copiar primero, borrar después: si el borrado falla queda una copia de
	// más, nunca se pierde la categoría.
	if err := uc.repo.GuardarCategoria(destino, cat); err != nil {
		return err
	}
	if err := uc.repo.EliminarCategoria(origen); err != nil {
		return err
	}
	uc.arbol[destino] = cat
	delete(uc.arbol, origen)
	uc.log.Info().Str("de", origen).Str("a", destino).Msg("categoría renombrada")
	uc.notificar()
	return nil
}

// EliminarCategoria borra la categoría con todas sus subactividades. Los
// folios ya escritos conservan sus claves congeladas: el borrado no los toca.
func (uc *TaxonomyUseCase) EliminarCategoria(nombre string) error {
	clave := taxonomy.NormalizarClave(nombre)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, existe := uc.arbol[clave]; !existe {
		return domain.ErrNoEncontrado
	}
	if err := uc.repo.EliminarCategoria(clave); err != nil {
		return err
	}
	delete(uc.arbol, clave)
	uc.log.Info().Str("categoria", clave).Msg("categoría eliminada")
	uc.notificar()
	return nil
}

// SetActiva enciende o apaga una categoría sin tocar sus subactividades.
func (uc *TaxonomyUseCase) SetActiva(nombre string, activa bool) error {
	clave := taxonomy.NormalizarClave(nombre)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	cat, existe := uc.arbol[clave]
	if !existe {
		return domain.ErrNoEncontrado
	}
	if cat.Activa == activa {
		return nil
	}
	cat.Activa = activa
	if err := uc.repo.GuardarCategoria(clave, cat); err != nil {
		return err
	}
	uc.arbol[clave] = cat
	uc.notificar()
	return nil
}

// AgregarSub agrega una subactividad a una categoría existente. Sobre una
// categoría legado la convierte a la forma con subactividades.
func (uc *TaxonomyUseCase) AgregarSub(categoria, sub string) error {
	claveCat := taxonomy.NormalizarClave(categoria)
	claveSub := taxonomy.NormalizarClave(sub)
	if claveSub == "" {
		return domain.ErrEntradaInvalida
	}
	if claveSub == taxonomy.ClaveActivo {
		return domain.ErrClaveReservada
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	cat, existe := uc.arbol[claveCat]
	if !existe {
		return domain.ErrNoEncontrado
	}
	if cat.Sub == nil {
		cat.Sub = make(map[string]bool, 1)
	}
	if cat.Sub[claveSub] {
		return domain.ErrDuplicado
	}
	cat = cat.Clone()
	if cat.Sub == nil {
		cat.Sub = make(map[string]bool, 1)
	}
	cat.Sub[claveSub] = true
	cat.Legado = false
	if err := uc.repo.GuardarCategoria(claveCat, cat); err != nil {
		return err
	}
	uc.arbol[claveCat] = cat
	uc.notificar()
	return nil
}

// RenombrarSub mueve una subactividad dentro de su categoría (copia y borra).
func (uc *TaxonomyUseCase) RenombrarSub(categoria, actual, nuevo string) error {
	claveCat := taxonomy.NormalizarClave(categoria)
	origen := taxonomy.NormalizarClave(actual)
	destino := taxonomy.NormalizarClave(nuevo)
	if destino == "" {
		return domain.ErrEntradaInvalida
	}
	if destino == taxonomy.ClaveActivo {
		return domain.ErrClaveReservada
	}
	if origen == destino {
		return nil
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	cat, existe := uc.arbol[claveCat]
	if !existe {
		return domain.ErrNoEncontrado
	}
	if !cat.Sub[origen] {
		return domain.ErrNoEncontrado
	}
	if cat.Sub[destino] {
		return domain.ErrDuplicado
	}
	cat = cat.Clone()
	cat.Sub[destino] = true
	delete(cat.Sub, origen)
	if err := uc.repo.GuardarCategoria(claveCat, cat); err != nil {
		return err
	}
	uc.arbol[claveCat] = cat
	uc.notificar()
	return nil
}

// EliminarSub quita una subactividad de su categoría.
func (uc *TaxonomyUseCase) EliminarSub(categoria, sub string) error {
	claveCat := taxonomy.NormalizarClave(categoria)
	claveSub := taxonomy.NormalizarClave(sub)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	cat, existe := uc.arbol[claveCat]
	if !existe {
		return domain.ErrNoEncontrado
	}
	if !cat.Sub[claveSub] {
		return domain.ErrNoEncontrado
	}
	cat = cat.Clone()
	delete(cat.Sub, claveSub)
	if err := uc.repo.GuardarCategoria(claveCat, cat); err != nil {
		return err
	}
	uc.arbol[claveCat] = cat
	uc.notificar()
	return nil
}

// ClavesActivas devuelve las claves de categoría activas en orden estable.
func (uc *TaxonomyUseCase) ClavesActivas() []string {
	return uc.Activas().Claves()
}
