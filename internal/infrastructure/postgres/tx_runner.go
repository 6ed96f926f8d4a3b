package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/catalogo-servicios/internal/application/usecase"
)

var _ usecase.CatalogTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// NewCatalogRepos construye los repositorios del catálogo sobre q (pool o tx).
func NewCatalogRepos(q Querier) usecase.CatalogRepos {
	return usecase.CatalogRepos{
		Categorias:      NewCategoriaRepository(q),
		Servicios:       NewServicioRepository(q),
		Subcategorias:   NewSubcategoriaRepository(q),
		Items:           NewItemRepository(q),
		Caracteristicas: NewCaracteristicaRepository(q),
	}
}

// RunCatalog inicia una transacción, ejecuta fn con los repos atados a la tx y
// hace Commit o Rollback.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(repos usecase.CatalogRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCatalogRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
