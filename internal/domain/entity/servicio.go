package entity

// Servicio es una oferta del catálogo; pertenece a exactamente una Categoria.
type Servicio struct {
	ID          int64
	Nombre      string
	Descripcion string
	CategoriaID int64

	// Poblados por el listado completo (fetchAllServicios).
	Subcategorias   []Subcategoria
	Caracteristicas []Caracteristica
}

// Subcategoria agrupa ítems dentro de un servicio.
type Subcategoria struct {
	ID         int64
	Nombre     string
	ServicioID int64
}

// Caracteristica es un atributo tipo etiqueta asignable a varios servicios.
type Caracteristica struct {
	ID     int64
	Nombre string
}
