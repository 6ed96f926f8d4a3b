package repository

import (
	"context"

	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemRepository define el puerto de persistencia para Item.
type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	ListWithDetails(ctx context.Context) ([]entity.ItemDetalle, error)
	UpdatePrecio(ctx context.Context, id int64, precio decimal.Decimal) error
	DeleteByServicio(ctx context.Context, servicioID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}
