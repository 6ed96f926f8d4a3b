// Package search filtra y resalta la lista aplanada de ítems del catálogo.
// Toda comparación de texto pasa por textnorm, así "declaracion" encuentra "Declaración".
package search

import (
	"strings"

	"github.com/jhoicas/catalogo-servicios/pkg/textnorm"
)

// AllFilter es el valor de ServicioID/CategoriaID que no restringe nada.
const AllFilter = "all"

// Filters criterios activos del buscador. Son conjuntivos; los valores vienen tal
// cual los escribe el usuario (texto), y se interpretan al filtrar.
type Filters struct {
	SearchTerm  string `json:"searchTerm"`
	MinPrice    string `json:"minPrice"`
	MaxPrice    string `json:"maxPrice"`
	ServicioID  string `json:"servicioId"`
	CategoriaID string `json:"categoriaId"`
}

// DefaultFilters criterios sin restricción: precios en blanco ([0, +∞)) y "all".
func DefaultFilters() Filters {
	return Filters{ServicioID: AllFilter, CategoriaID: AllFilter}
}

// IsFilterActive es true si algún criterio se aparta de su valor por defecto.
func IsFilterActive(f *Filters) bool {
	if f == nil {
		return false
	}
	return textnorm.Normalize(f.SearchTerm) != "" ||
		strings.TrimSpace(f.MinPrice) != "" ||
		strings.TrimSpace(f.MaxPrice) != "" ||
		!isAll(f.ServicioID) ||
		!isAll(f.CategoriaID)
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == AllFilter
}
