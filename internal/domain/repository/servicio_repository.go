package repository

import (
	"context"

	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

// ServicioRepository define el puerto de persistencia para Servicio.
type ServicioRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Servicio, error)
	// ListWithDetails devuelve todos los servicios con subcategorías y características.
	ListWithDetails(ctx context.Context) ([]*entity.Servicio, error)
	UpdateNombre(ctx context.Context, id int64, nombre string) error
	CountByCategoria(ctx context.Context, categoriaID int64) (int, error)
	// UnlinkCaracteristicas elimina las filas de servicio_caracteristicas del servicio.
	UnlinkCaracteristicas(ctx context.Context, servicioID int64) error
	Delete(ctx context.Context, id int64) error
}
