package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-servicios/internal/domain"
	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
	"github.com/jhoicas/catalogo-servicios/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByID obtiene un ítem; nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, precio, id_servicio, id_subcategoria FROM items WHERE id = $1`, id,
	).Scan(&it.ID, &it.Nombre, &it.Precio, &it.ServicioID, &it.SubcategoriaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

const itemsWithDetailsQuery = `
	SELECT i.id, i.nombre, i.precio::text,
	       s.id, s.nombre,
	       sc.id, COALESCE(sc.nombre, ''),
	       c.id, c.nombre
	FROM items i
	JOIN servicios s ON s.id = i.id_servicio
	JOIN categorias c ON c.id = s.id_categoria
	LEFT JOIN subcategorias sc ON sc.id = i.id_subcategoria
	ORDER BY c.nombre, s.nombre, i.nombre, i.id`

// ListWithDetails devuelve la lista aplanada de ítems con los nombres de su jerarquía.
func (r *ItemRepo) ListWithDetails(ctx context.Context) ([]entity.ItemDetalle, error) {
	rows, err := r.q.Query(ctx, itemsWithDetailsQuery)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []entity.ItemDetalle
	for rows.Next() {
		var d entity.ItemDetalle
		if err := rows.Scan(
			&d.ID, &d.Nombre, &d.Precio,
			&d.ServicioID, &d.ServicioNombre,
			&d.SubcategoriaID, &d.SubcategoriaNombre,
			&d.CategoriaID, &d.CategoriaNombre,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// UpdatePrecio cambia el precio del ítem.
func (r *ItemRepo) UpdatePrecio(ctx context.Context, id int64, precio decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE items SET precio = $2 WHERE id = $1`, id, precio)
	if err != nil {
		return fmt.Errorf("update precio: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("ítem %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteByServicio borra los ítems del servicio y devuelve cuántos borró.
func (r *ItemRepo) DeleteByServicio(ctx context.Context, servicioID int64) (int, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM items WHERE id_servicio = $1`, servicioID)
	if err != nil {
		return 0, fmt.Errorf("delete items: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// Delete borra un ítem.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("ítem %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
