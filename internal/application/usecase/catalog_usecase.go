package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-servicios/internal/application/admin"
	"github.com/jhoicas/catalogo-servicios/internal/application/dto"
	"github.com/jhoicas/catalogo-servicios/internal/domain"
	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
	"github.com/jhoicas/catalogo-servicios/internal/domain/repository"
)

var _ admin.Backend = (*CatalogUseCase)(nil)

// CatalogRepos agrupa los repositorios del catálogo (sobre el pool o sobre una tx).
type CatalogRepos struct {
	Categorias      repository.CategoriaRepository
	Servicios       repository.ServicioRepository
	Subcategorias   repository.SubcategoriaRepository
	Items           repository.ItemRepository
	Caracteristicas repository.CaracteristicaRepository
}

// CatalogTxRunner ejecuta fn con repositorios atados a una misma transacción.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(repos CatalogRepos) error) error
}

// CatalogUseCase es el backend del panel de administración.
type CatalogUseCase struct {
	repos CatalogRepos
	tx    CatalogTxRunner
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repos CatalogRepos, tx CatalogTxRunner) *CatalogUseCase {
	return &CatalogUseCase{repos: repos, tx: tx}
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// ListCategorias devuelve todas las categorías.
func (uc *CatalogUseCase) ListCategorias(ctx context.Context) ([]entity.Categoria, error) {
	list, err := uc.repos.Categorias.List(ctx)
	if err != nil {
		return nil, err
	}
	return deref(list), nil
}

// ListServicios devuelve todos los servicios con subcategorías y características.
func (uc *CatalogUseCase) ListServicios(ctx context.Context) ([]entity.Servicio, error) {
	list, err := uc.repos.Servicios.ListWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	return deref(list), nil
}

// ListItemsWithDetails devuelve la lista aplanada de ítems.
func (uc *CatalogUseCase) ListItemsWithDetails(ctx context.Context) ([]entity.ItemDetalle, error) {
	list, err := uc.repos.Items.ListWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []entity.ItemDetalle{}
	}
	return list, nil
}

// ListCaracteristicas devuelve todas las características.
func (uc *CatalogUseCase) ListCaracteristicas(ctx context.Context) ([]entity.Caracteristica, error) {
	list, err := uc.repos.Caracteristicas.List(ctx)
	if err != nil {
		return nil, err
	}
	return deref(list), nil
}

func deref[T any](list []*T) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		out = append(out, *v)
	}
	return out
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CreateCategoria crea una categoría.
func (uc *CatalogUseCase) CreateCategoria(ctx context.Context, in dto.CategoriaRequest) (*entity.Categoria, error) {
	in, err := admin.ValidateCategoria(in)
	if err != nil {
		return nil, err
	}
	c := &entity.Categoria{Nombre: in.Nombre, Color: in.Color}
	if err := uc.repos.Categorias.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCategoria actualiza nombre y color.
func (uc *CatalogUseCase) UpdateCategoria(ctx context.Context, id int64, in dto.CategoriaRequest) error {
	in, err := admin.ValidateCategoria(in)
	if err != nil {
		return err
	}
	c, err := uc.repos.Categorias.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("categoría %d: %w", id, domain.ErrNotFound)
	}
	c.Nombre, c.Color = in.Nombre, in.Color
	return uc.repos.Categorias.Update(ctx, c)
}

// DeleteCategoria borra una categoría sin servicios.
func (uc *CatalogUseCase) DeleteCategoria(ctx context.Context, id int64) error {
	n, err := uc.repos.Servicios.CountByCategoria(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w (%d)", domain.ErrCategoriaConServicio, n)
	}
	return uc.repos.Categorias.Delete(ctx, id)
}

// ── Servicios, ítems y características ────────────────────────────────────────

// DeleteServicio borra en una transacción el servicio con sus ítems, sus
// subcategorías y sus vínculos con características.
func (uc *CatalogUseCase) DeleteServicio(ctx context.Context, id int64) (*dto.DeleteServicioResult, error) {
	res := &dto.DeleteServicioResult{}
	err := uc.tx.RunCatalog(ctx, func(r CatalogRepos) error {
		sv, err := r.Servicios.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sv == nil {
			return fmt.Errorf("servicio %d: %w", id, domain.ErrNotFound)
		}
		if res.ItemsDeleted, err = r.Items.DeleteByServicio(ctx, id); err != nil {
			return err
		}
		if res.SubcategoriasDeleted, err = r.Subcategorias.DeleteByServicio(ctx, id); err != nil {
			return err
		}
		if err := r.Servicios.UnlinkCaracteristicas(ctx, id); err != nil {
			return err
		}
		return r.Servicios.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteItem borra un ítem.
func (uc *CatalogUseCase) DeleteItem(ctx context.Context, id int64) error {
	return uc.repos.Items.Delete(ctx, id)
}

// DeleteCaracteristica desvincula la característica de sus servicios y la borra.
func (uc *CatalogUseCase) DeleteCaracteristica(ctx context.Context, id int64) error {
	return uc.tx.RunCatalog(ctx, func(r CatalogRepos) error {
		if err := r.Caracteristicas.UnlinkServicios(ctx, id); err != nil {
			return err
		}
		return r.Caracteristicas.Delete(ctx, id)
	})
}

// UpdateServicioNombre renombra un servicio.
func (uc *CatalogUseCase) UpdateServicioNombre(ctx context.Context, id int64, nombre string) error {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return fmt.Errorf("%w: nombre de servicio vacío", domain.ErrInvalidInput)
	}
	return uc.repos.Servicios.UpdateNombre(ctx, id, nombre)
}

// UpdateSubcategoriaNombre renombra una subcategoría.
func (uc *CatalogUseCase) UpdateSubcategoriaNombre(ctx context.Context, id int64, nombre string) error {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return fmt.Errorf("%w: nombre de subcategoría vacío", domain.ErrInvalidInput)
	}
	return uc.repos.Subcategorias.UpdateNombre(ctx, id, nombre)
}

// UpdateItemPrecio cambia el precio de un ítem.
func (uc *CatalogUseCase) UpdateItemPrecio(ctx context.Context, id int64, precio decimal.Decimal) error {
	if precio.IsNegative() {
		return fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	return uc.repos.Items.UpdatePrecio(ctx, id, precio)
}

// CleanupUnusedSubcategorias borra las subcategorías de los ítems afectados que
// ningún ítem superviviente referencia.
func (uc *CatalogUseCase) CleanupUnusedSubcategorias(ctx context.Context, affected []entity.ItemDetalle) (int, error) {
	seen := make(map[int64]bool)
	var ids []int64
	for _, it := range affected {
		if it.SubcategoriaID == nil || seen[*it.SubcategoriaID] {
			continue
		}
		seen[*it.SubcategoriaID] = true
		ids = append(ids, *it.SubcategoriaID)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return uc.repos.Subcategorias.DeleteUnused(ctx, ids)
}
