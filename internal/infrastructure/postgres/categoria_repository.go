package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-servicios/internal/domain"
	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
	"github.com/jhoicas/catalogo-servicios/internal/domain/repository"
)

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación del puerto CategoriaRepository sobre PostgreSQL.
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador de persistencia para categorías.
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create inserta la categoría y completa su ID.
func (r *CategoriaRepo) Create(ctx context.Context, c *entity.Categoria) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO categorias (nombre, color) VALUES ($1, $2) RETURNING id`,
		c.Nombre, c.Color,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("categoría %q: %w", c.Nombre, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría; nil si no existe.
func (r *CategoriaRepo) GetByID(ctx context.Context, id int64) (*entity.Categoria, error) {
	var c entity.Categoria
	err := r.q.QueryRow(ctx, `SELECT id, nombre, color FROM categorias WHERE id = $1`, id).
		Scan(&c.ID, &c.Nombre, &c.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

// Update guarda nombre y color.
func (r *CategoriaRepo) Update(ctx context.Context, c *entity.Categoria) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE categorias SET nombre = $2, color = $3, updated_at = now() WHERE id = $1`,
		c.ID, c.Nombre, c.Color,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("categoría %q: %w", c.Nombre, domain.ErrDuplicate)
		}
		return fmt.Errorf("update categoria: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("categoría %d: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

// List devuelve todas las categorías ordenadas por nombre.
func (r *CategoriaRepo) List(ctx context.Context) ([]*entity.Categoria, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, color FROM categorias ORDER BY nombre, id`)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Categoria
	for rows.Next() {
		var c entity.Categoria
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Color); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete borra la categoría. Con servicios asociados devuelve ErrCategoriaConServicio.
func (r *CategoriaRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %w", domain.ErrConflict, domain.ErrCategoriaConServicio)
		}
		return fmt.Errorf("delete categoria: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("categoría %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
