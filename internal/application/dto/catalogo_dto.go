package dto

import (
	"time"

	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

// CategoriaRequest entrada para crear o actualizar una categoría.
type CategoriaRequest struct {
	Nombre string `json:"nombre"`
	Color  string `json:"color"`
}

// CategoriaResponse salida de una categoría.
type CategoriaResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Color  string `json:"color"`
}

// DeleteServicioResult conteos que informa el backend al borrar un servicio en cascada.
type DeleteServicioResult struct {
	ItemsDeleted         int `json:"itemsDeleted"`
	SubcategoriasDeleted int `json:"subcategoriasDeleted"`
}

// SegmentResponse trozo de texto resaltado.
type SegmentResponse struct {
	Text    string `json:"text"`
	IsMatch bool   `json:"isMatch"`
}

// ItemResponse ítem del catálogo tal como lo muestra el buscador.
type ItemResponse struct {
	entity.ItemDetalle
	PrecioFormateado      string            `json:"precio_formateado"`
	ServicioResaltado     []SegmentResponse `json:"servicio_resaltado"`
	SubcategoriaResaltada []SegmentResponse `json:"subcategoria_resaltada"`
}

// ItemListResponse resultado del buscador.
type ItemListResponse struct {
	Items        []ItemResponse `json:"items"`
	Total        int            `json:"total"`
	FiltroActivo bool           `json:"filtro_activo"`
	Page         PageResponse   `json:"page"`
}

// FiltersRequest criterios de búsqueda enviados por el panel.
type FiltersRequest struct {
	SearchTerm  string `json:"searchTerm"`
	MinPrice    string `json:"minPrice"`
	MaxPrice    string `json:"maxPrice"`
	ServicioID  string `json:"servicioId"`
	CategoriaID string `json:"categoriaId"`
}

// ExpansionRequest abre o cierra una sección del panel.
type ExpansionRequest struct {
	Tipo    string `json:"tipo"` // "servicio" | "item"
	ID      int64  `json:"id"`
	Abierto bool   `json:"abierto"`
}

// ModalRequest muestra u oculta un modal del panel.
type ModalRequest struct {
	Modal   string `json:"modal"`
	Visible bool   `json:"visible"`
}

// EdicionRequest guarda en el buffer un cambio sin confirmar.
type EdicionRequest struct {
	Tipo  string `json:"tipo"` // "servicio" | "subcategoria" | "precio"
	ID    int64  `json:"id"`
	Valor string `json:"valor"`
}

// NotificationResponse mensaje para el usuario (éxito o error).
type NotificationResponse struct {
	Tipo    string `json:"tipo"`
	Mensaje string `json:"mensaje"`
}

// OperationResponse resultado de confirmar una operación del panel.
type OperationResponse struct {
	OK             bool                   `json:"ok"`
	Notificaciones []NotificationResponse `json:"notificaciones"`
	Cascada        *CascadeResponse       `json:"cascada,omitempty"`
}

// CascadeResponse detalle del borrado en cascada de una categoría.
type CascadeResponse struct {
	CategoriaID          int64   `json:"categoriaId"`
	ServiciosEliminados  []int64 `json:"serviciosEliminados"`
	FalloPaso            string  `json:"falloPaso,omitempty"`
	FalloServicioID      int64   `json:"falloServicioId,omitempty"`
	FalloServicioNombre  string  `json:"falloServicioNombre,omitempty"`
	SubcategoriasLimpias int     `json:"subcategoriasLimpias"`
}

// ListaPrecios datos de la lista de precios imprimible, agrupada por categoría y servicio.
type ListaPrecios struct {
	Titulo     string
	Moneda     string
	Generada   time.Time
	Categorias []ListaPreciosCategoria
}

// ListaPreciosCategoria sección de una categoría.
type ListaPreciosCategoria struct {
	Nombre    string
	Color     string
	Servicios []ListaPreciosServicio
}

// ListaPreciosServicio bloque de un servicio con sus ítems.
type ListaPreciosServicio struct {
	Nombre string
	Items  []ListaPreciosItem
}

// ListaPreciosItem línea de la lista; Precio ya formateado con dos decimales.
type ListaPreciosItem struct {
	Nombre       string
	Subcategoria string
	Precio       string
}

// SolicitudRequest objetivo de una operación del panel (servicio, categoría, ítem o característica).
type SolicitudRequest struct {
	ID int64 `json:"id"`
}
