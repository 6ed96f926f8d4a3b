package entity

// Categoria agrupa servicios del catálogo. Color es el color de presentación (#RRGGBB).
type Categoria struct {
	ID     int64
	Nombre string
	Color  string
}
