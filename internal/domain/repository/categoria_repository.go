package repository

import (
	"context"

	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

// CategoriaRepository define el puerto de persistencia para Categoria (DIP).
type CategoriaRepository interface {
	Create(ctx context.Context, categoria *entity.Categoria) error
	GetByID(ctx context.Context, id int64) (*entity.Categoria, error)
	Update(ctx context.Context, categoria *entity.Categoria) error
	List(ctx context.Context) ([]*entity.Categoria, error)
	Delete(ctx context.Context, id int64) error
}
