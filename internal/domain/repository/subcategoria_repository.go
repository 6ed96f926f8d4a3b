package repository

import (
	"context"

	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

// SubcategoriaRepository define el puerto de persistencia para Subcategoria.
type SubcategoriaRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Subcategoria, error)
	UpdateNombre(ctx context.Context, id int64, nombre string) error
	DeleteByServicio(ctx context.Context, servicioID int64) (int, error)
	// DeleteUnused borra, de entre ids, las subcategorías que ningún ítem referencia.
	DeleteUnused(ctx context.Context, ids []int64) (int, error)
}
