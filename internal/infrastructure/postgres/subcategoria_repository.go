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

var _ repository.SubcategoriaRepository = (*SubcategoriaRepo)(nil)

// SubcategoriaRepo implementación del puerto SubcategoriaRepository sobre PostgreSQL.
type SubcategoriaRepo struct {
	q Querier
}

// NewSubcategoriaRepository construye el adaptador de persistencia para subcategorías.
func NewSubcategoriaRepository(q Querier) *SubcategoriaRepo {
	return &SubcategoriaRepo{q: q}
}

// GetByID obtiene una subcategoría; nil si no existe.
func (r *SubcategoriaRepo) GetByID(ctx context.Context, id int64) (*entity.Subcategoria, error) {
	var s entity.Subcategoria
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, id_servicio FROM subcategorias WHERE id = $1`, id,
	).Scan(&s.ID, &s.Nombre, &s.ServicioID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategoria: %w", err)
	}
	return &s, nil
}

// UpdateNombre renombra la subcategoría.
func (r *SubcategoriaRepo) UpdateNombre(ctx context.Context, id int64, nombre string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE subcategorias SET nombre = $2 WHERE id = $1`, id, nombre)
	if err != nil {
		return fmt.Errorf("update subcategoria: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("subcategoría %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteByServicio borra las subcategorías del servicio. Los ítems de otros
// servicios que las usaban quedan sin subcategoría (ON DELETE SET NULL).
func (r *SubcategoriaRepo) DeleteByServicio(ctx context.Context, servicioID int64) (int, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM subcategorias WHERE id_servicio = $1`, servicioID)
	if err != nil {
		return 0, fmt.Errorf("delete subcategorias: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// DeleteUnused borra, de entre ids, las subcategorías que ningún ítem referencia.
func (r *SubcategoriaRepo) DeleteUnused(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx, `
		DELETE FROM subcategorias s
		WHERE s.id = ANY($1)
		  AND NOT EXISTS (SELECT 1 FROM items i WHERE i.id_subcategoria = s.id)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete subcategorias sin uso: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}
