package folio

import (
	"context"
	"encoding/json"

	"github.com/heliosapp/helios-api/internal/application/ports"
	"github.com/heliosapp/helios-api/internal/domain"
	"github.com/heliosapp/helios-api/internal/domain/entity"
	"github.com/heliosapp/helios-api/pkg/pushid"
)

// Materializar convierte la sesión completa en un folio persistible. Las
// fotos se suben una a una antes de armar el documento: si una subida falla
// se aborta con la sesión intacta y lo ya subido queda huérfano en el
// almacén de blobs, nunca referenciado a medias por un folio. El documento
// se escribe después en una sola operación.
//
// La forma del árbol de actividades queda decidida por la taxonomía
// congelada: plana si todas las categorías son legado, anidada en cuanto hay
// una con subactividades (las legado se anidan bajo su clave implícita).
func (b *Builder) Materializar(ctx context.Context, blobs ports.BlobStore, usuario string) (*entity.Folio, error) {
	if b.enviado {
		return nil, domain.ErrFolioEnviado
	}
	if !b.Completo() {
		return nil, domain.ErrPasoIncompleto
	}

	hojas := make(map[string]map[string]entity.Actividad, len(b.orden))
	for _, cat := range b.orden {
		porSub := make(map[string]entity.Actividad, len(b.datos[cat]))
		for sub, reg := range b.datos[cat] {
			urls := make([]string, 0, len(reg.Fotos))
			for _, foto := range reg.Fotos {
				url, err := blobs.Subir(ctx, "fotos", "jpg", foto)
				if err != nil {
					return nil, err
				}
				urls = append(urls, url)
			}
			hoja := entity.Actividad{
				Puntuacion: reg.Puntuacion,
				Comentario: reg.Comentario,
			}
			if len(urls) > 0 {
				hoja.Fotos = urls
			}
			porSub[sub] = hoja
		}
		hojas[cat] = porSub
	}

	var arbol interface{}
	if b.esPlano() {
		plano := make(map[string]entity.Actividad, len(hojas))
		for cat, porSub := range hojas {
			plano[cat] = porSub[ClaveGeneral]
		}
		arbol = plano
	} else {
		arbol = hojas
	}
	actividades, err := json.Marshal(arbol)
	if err != nil {
		return nil, err
	}

	f := &entity.Folio{
		ID:          pushid.New(),
		Usuario:     usuario,
		Sucursal:    b.sucursal,
		Fecha:       b.fecha,
		Coordenadas: b.coordenadas,
		Lat:         b.lat,
		Lng:         b.lng,
		Actividades: actividades,
	}
	return f, nil
}

// MarcarEnviado sella la sesión una vez persistido el folio. Se separa de
// Materializar para que un fallo al guardar deje la sesión reintentable.
func (b *Builder) MarcarEnviado() { b.enviado = true }
