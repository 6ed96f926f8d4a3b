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

var _ repository.CaracteristicaRepository = (*CaracteristicaRepo)(nil)

// CaracteristicaRepo implementación del puerto CaracteristicaRepository sobre PostgreSQL.
type CaracteristicaRepo struct {
	q Querier
}

// NewCaracteristicaRepository construye el adaptador de persistencia para características.
func NewCaracteristicaRepository(q Querier) *CaracteristicaRepo {
	return &CaracteristicaRepo{q: q}
}

// GetByID obtiene una característica; nil si no existe.
func (r *CaracteristicaRepo) GetByID(ctx context.Context, id int64) (*entity.Caracteristica, error) {
	var c entity.Caracteristica
	err := r.q.QueryRow(ctx, `SELECT id, nombre FROM caracteristicas WHERE id = $1`, id).
		Scan(&c.ID, &c.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get caracteristica: %w", err)
	}
	return &c, nil
}

// List devuelve todas las características.
func (r *CaracteristicaRepo) List(ctx context.Context) ([]*entity.Caracteristica, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre FROM caracteristicas ORDER BY nombre, id`)
	if err != nil {
		return nil, fmt.Errorf("list caracteristicas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Caracteristica
	for rows.Next() {
		var c entity.Caracteristica
		if err := rows.Scan(&c.ID, &c.Nombre); err != nil {
			return nil, fmt.Errorf("scan caracteristica: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UnlinkServicios elimina los vínculos de la característica con servicios.
func (r *CaracteristicaRepo) UnlinkServicios(ctx context.Context, caracteristicaID int64) error {
	if _, err := r.q.Exec(ctx,
		`DELETE FROM servicio_caracteristicas WHERE id_caracteristica = $1`, caracteristicaID,
	); err != nil {
		return fmt.Errorf("unlink servicios: %w", err)
	}
	return nil
}

// Delete borra la característica.
func (r *CaracteristicaRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM caracteristicas WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("característica %d todavía asignada: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete caracteristica: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("característica %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
