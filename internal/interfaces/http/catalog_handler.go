package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-servicios/internal/application/dto"
	"github.com/jhoicas/catalogo-servicios/internal/application/search"
	"github.com/jhoicas/catalogo-servicios/internal/application/usecase"
)

// CatalogHandler buscador público y lista de precios.
type CatalogHandler struct {
	uc *usecase.StorefrontUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.StorefrontUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// filtersFromQuery lee los criterios de la query; servicio y categoría ausentes son "all".
func filtersFromQuery(c *fiber.Ctx) search.Filters {
	return search.Filters{
		SearchTerm:  c.Query("q"),
		MinPrice:    c.Query("min_price"),
		MaxPrice:    c.Query("max_price"),
		ServicioID:  c.Query("servicio_id", search.AllFilter),
		CategoriaID: c.Query("categoria_id", search.AllFilter),
	}
}

// Items godoc
// @Summary      Buscar ítems del catálogo
// @Tags         catalogo
// @Produce      json
// @Param        q             query  string  false  "Texto (ignora tildes y mayúsculas)"
// @Param        min_price     query  string  false  "Precio mínimo"
// @Param        max_price     query  string  false  "Precio máximo"
// @Param        servicio_id   query  string  false  "ID de servicio o all"
// @Param        categoria_id  query  string  false  "ID de categoría o all"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ItemListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/catalogo/items [get]
func (h *CatalogHandler) Items(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.Search(c.UserContext(), filtersFromQuery(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categorias godoc
// @Summary      Listar categorías
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}   dto.CategoriaResponse
// @Router       /api/catalogo/categorias [get]
func (h *CatalogHandler) Categorias(c *fiber.Ctx) error {
	out, err := h.uc.Categorias(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PriceList godoc
// @Summary      Lista de precios en PDF
// @Tags         catalogo
// @Produce      application/pdf
// @Success      200
// @Router       /api/catalogo/lista-precios.pdf [get]
func (h *CatalogHandler) PriceList(c *fiber.Ctx) error {
	out, err := h.uc.PriceListPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="lista-precios.pdf"`)
	return c.Send(out)
}
