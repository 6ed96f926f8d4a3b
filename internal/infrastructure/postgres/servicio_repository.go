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

var _ repository.ServicioRepository = (*ServicioRepo)(nil)

// ServicioRepo implementación del puerto ServicioRepository sobre PostgreSQL.
type ServicioRepo struct {
	q Querier
}

// NewServicioRepository construye el adaptador de persistencia para servicios.
func NewServicioRepository(q Querier) *ServicioRepo {
	return &ServicioRepo{q: q}
}

// GetByID obtiene un servicio (sin subcategorías ni características); nil si no existe.
func (r *ServicioRepo) GetByID(ctx context.Context, id int64) (*entity.Servicio, error) {
	var s entity.Servicio
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, descripcion, id_categoria FROM servicios WHERE id = $1`, id,
	).Scan(&s.ID, &s.Nombre, &s.Descripcion, &s.CategoriaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get servicio: %w", err)
	}
	return &s, nil
}

// ListWithDetails devuelve todos los servicios con sus subcategorías y características.
func (r *ServicioRepo) ListWithDetails(ctx context.Context) ([]*entity.Servicio, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, nombre, descripcion, id_categoria FROM servicios ORDER BY nombre, id`)
	if err != nil {
		return nil, fmt.Errorf("list servicios: %w", err)
	}
	var list []*entity.Servicio
	byID := make(map[int64]*entity.Servicio)
	for rows.Next() {
		var s entity.Servicio
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Descripcion, &s.CategoriaID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan servicio: %w", err)
		}
		list = append(list, &s)
		byID[s.ID] = &s
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list servicios: %w", err)
	}

	if err := r.attachSubcategorias(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.attachCaracteristicas(ctx, byID); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ServicioRepo) attachSubcategorias(ctx context.Context, byID map[int64]*entity.Servicio) error {
	rows, err := r.q.Query(ctx,
		`SELECT id, nombre, id_servicio FROM subcategorias ORDER BY nombre, id`)
	if err != nil {
		return fmt.Errorf("list subcategorias: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sub entity.Subcategoria
		if err := rows.Scan(&sub.ID, &sub.Nombre, &sub.ServicioID); err != nil {
			return fmt.Errorf("scan subcategoria: %w", err)
		}
		if s, ok := byID[sub.ServicioID]; ok {
			s.Subcategorias = append(s.Subcategorias, sub)
		}
	}
	return rows.Err()
}

func (r *ServicioRepo) attachCaracteristicas(ctx context.Context, byID map[int64]*entity.Servicio) error {
	rows, err := r.q.Query(ctx, `
		SELECT sc.id_servicio, c.id, c.nombre
		FROM servicio_caracteristicas sc
		JOIN caracteristicas c ON c.id = sc.id_caracteristica
		ORDER BY c.nombre, c.id`)
	if err != nil {
		return fmt.Errorf("list servicio_caracteristicas: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var servicioID int64
		var c entity.Caracteristica
		if err := rows.Scan(&servicioID, &c.ID, &c.Nombre); err != nil {
			return fmt.Errorf("scan servicio_caracteristica: %w", err)
		}
		if s, ok := byID[servicioID]; ok {
			s.Caracteristicas = append(s.Caracteristicas, c)
		}
	}
	return rows.Err()
}

// UpdateNombre renombra el servicio.
func (r *ServicioRepo) UpdateNombre(ctx context.Context, id int64, nombre string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE servicios SET nombre = $2 WHERE id = $1`, id, nombre)
	if err != nil {
		return fmt.Errorf("update servicio: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("servicio %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// CountByCategoria cuenta los servicios de una categoría.
func (r *ServicioRepo) CountByCategoria(ctx context.Context, categoriaID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM servicios WHERE id_categoria = $1`, categoriaID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count servicios: %w", err)
	}
	return n, nil
}

// UnlinkCaracteristicas elimina los vínculos del servicio con características.
func (r *ServicioRepo) UnlinkCaracteristicas(ctx context.Context, servicioID int64) error {
	if _, err := r.q.Exec(ctx,
		`DELETE FROM servicio_caracteristicas WHERE id_servicio = $1`, servicioID,
	); err != nil {
		return fmt.Errorf("unlink caracteristicas: %w", err)
	}
	return nil
}

// Delete borra el servicio. Debe haberse vaciado antes de ítems y subcategorías.
func (r *ServicioRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM servicios WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("servicio %d todavía referenciado: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete servicio: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("servicio %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
