package entity

import "github.com/shopspring/decimal"

// Item es la hoja con precio del catálogo.
type Item struct {
	ID             int64
	Nombre         string
	Precio         decimal.Decimal
	ServicioID     int64
	SubcategoriaID *int64 // nil si el ítem cuelga directo del servicio
}

// ItemDetalle es la vista aplanada de un ítem con los nombres de su jerarquía
// (la lista "itemsWithDetails" que consume el panel y el buscador).
// Precio viaja como texto tal cual lo entrega el backend ("15.5", "30.00").
type ItemDetalle struct {
	ID                 int64  `json:"id"`
	Nombre             string `json:"nombre"`
	Precio             string `json:"precio"`
	ServicioID         int64  `json:"id_servicio"`
	ServicioNombre     string `json:"servicio_nombre"`
	SubcategoriaID     *int64 `json:"id_subcategoria,omitempty"`
	SubcategoriaNombre string `json:"subcategoria_nombre"`
	CategoriaID        int64  `json:"id_categoria"`
	CategoriaNombre    string `json:"categoria_nombre"`
}
