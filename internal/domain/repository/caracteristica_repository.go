package repository

import (
	"context"

	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

// CaracteristicaRepository define el puerto de persistencia para Caracteristica.
type CaracteristicaRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Caracteristica, error)
	List(ctx context.Context) ([]*entity.Caracteristica, error)
	// UnlinkServicios elimina los vínculos servicio_caracteristicas de la característica.
	UnlinkServicios(ctx context.Context, caracteristicaID int64) error
	Delete(ctx context.Context, id int64) error
}
