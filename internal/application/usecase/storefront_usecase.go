package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-servicios/internal/application/dto"
	"github.com/jhoicas/catalogo-servicios/internal/application/search"
	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

// CatalogReader lecturas del catálogo que necesita el buscador público.
type CatalogReader interface {
	ListCategorias(ctx context.Context) ([]entity.Categoria, error)
	ListServicios(ctx context.Context) ([]entity.Servicio, error)
	ListItemsWithDetails(ctx context.Context) ([]entity.ItemDetalle, error)
}

// PriceListGenerator genera el PDF de la lista de precios.
type PriceListGenerator interface {
	GeneratePriceListPDF(ctx context.Context, lista *dto.ListaPrecios) ([]byte, error)
}

// StorefrontUseCase búsqueda pública y lista de precios.
type StorefrontUseCase struct {
	reader CatalogReader
	engine *search.Engine
	pdf    PriceListGenerator
	titulo string
	moneda string
	now    func() time.Time
}

// NewStorefrontUseCase construye el caso de uso.
func NewStorefrontUseCase(reader CatalogReader, engine *search.Engine, pdf PriceListGenerator, titulo, moneda string) *StorefrontUseCase {
	return &StorefrontUseCase{
		reader: reader,
		engine: engine,
		pdf:    pdf,
		titulo: titulo,
		moneda: moneda,
		now:    time.Now,
	}
}

// Search filtra los ítems del catálogo, pagina el resultado y resalta el término
// de búsqueda en los nombres de servicio y subcategoría.
func (uc *StorefrontUseCase) Search(ctx context.Context, f search.Filters, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.Clamp()
	items, err := uc.reader.ListItemsWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	servicios, err := uc.reader.ListServicios(ctx)
	if err != nil {
		return nil, err
	}

	filtered := uc.engine.FilterItems(items, &f, servicios)
	total := len(filtered)
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)

	out := make([]dto.ItemResponse, 0, end-start)
	for _, it := range filtered[start:end] {
		out = append(out, ToItemResponse(it, f.SearchTerm))
	}
	return &dto.ItemListResponse{
		Items:        out,
		Total:        total,
		FiltroActivo: search.IsFilterActive(&f),
		Page:         dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ToItemResponse arma la vista de un ítem con precio formateado y resaltado.
func ToItemResponse(it entity.ItemDetalle, term string) dto.ItemResponse {
	return dto.ItemResponse{
		ItemDetalle:           it,
		PrecioFormateado:      search.FormatPrice(it.Precio),
		ServicioResaltado:     toSegments(search.HighlightText(it.ServicioNombre, term)),
		SubcategoriaResaltada: toSegments(search.HighlightText(it.SubcategoriaNombre, term)),
	}
}

func toSegments(segs []search.Segment) []dto.SegmentResponse {
	out := make([]dto.SegmentResponse, len(segs))
	for i, s := range segs {
		out[i] = dto.SegmentResponse{Text: s.Text, IsMatch: s.IsMatch}
	}
	return out
}

// Categorias lista las categorías para los filtros del buscador.
func (uc *StorefrontUseCase) Categorias(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := uc.reader.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoriaResponse{ID: c.ID, Nombre: c.Nombre, Color: c.Color})
	}
	return out, nil
}

// PriceList agrupa el catálogo por categoría y servicio.
func (uc *StorefrontUseCase) PriceList(ctx context.Context) (*dto.ListaPrecios, error) {
	categorias, err := uc.reader.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	servicios, err := uc.reader.ListServicios(ctx)
	if err != nil {
		return nil, err
	}
	items, err := uc.reader.ListItemsWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	byServicio := make(map[int64][]dto.ListaPreciosItem)
	for _, it := range items {
		byServicio[it.ServicioID] = append(byServicio[it.ServicioID], dto.ListaPreciosItem{
			Nombre:       it.Nombre,
			Subcategoria: it.SubcategoriaNombre,
			Precio:       search.FormatPrice(it.Precio),
		})
	}
	lista := &dto.ListaPrecios{Titulo: uc.titulo, Moneda: uc.moneda, Generada: uc.now()}
	for _, c := range categorias {
		sec := dto.ListaPreciosCategoria{Nombre: c.Nombre, Color: c.Color}
		for _, sv := range servicios {
			if sv.CategoriaID != c.ID {
				continue
			}
			sec.Servicios = append(sec.Servicios, dto.ListaPreciosServicio{Nombre: sv.Nombre, Items: byServicio[sv.ID]})
		}
		lista.Categorias = append(lista.Categorias, sec)
	}
	return lista, nil
}

// PriceListPDF genera el PDF de la lista de precios.
func (uc *StorefrontUseCase) PriceListPDF(ctx context.Context) ([]byte, error) {
	lista, err := uc.PriceList(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GeneratePriceListPDF(ctx, lista)
}
