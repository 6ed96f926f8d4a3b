package admin

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-servicios/internal/domain"
)

type servicioChanges struct {
	nombre        *string
	subcategorias map[int64]string
	precios       map[int64]decimal.Decimal
}

func validateEdits(e ServicioEdits) (servicioChanges, error) {
	ch := servicioChanges{
		subcategorias: make(map[int64]string, len(e.Subcategorias)),
		precios:       make(map[int64]decimal.Decimal, len(e.Precios)),
	}
	if e.Nombre != nil {
		n := strings.TrimSpace(*e.Nombre)
		if n == "" {
			return ch, fmt.Errorf("%w: el nombre del servicio no puede quedar vacío", domain.ErrInvalidInput)
		}
		ch.nombre = &n
	}
	for id, v := range e.Subcategorias {
		n := strings.TrimSpace(v)
		if n == "" {
			return ch, fmt.Errorf("%w: el nombre de la subcategoría %d no puede quedar vacío", domain.ErrInvalidInput, id)
		}
		ch.subcategorias[id] = n
	}
	for id, v := range e.Precios {
		p, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil || p.IsNegative() {
			return ch, fmt.Errorf("%w: precio %q del ítem %d", domain.ErrInvalidInput, v, id)
		}
		ch.precios[id] = p
	}
	return ch, nil
}

// SaveServicioEdits guarda los cambios sin confirmar de un servicio (nombre,
// nombres de subcategorías y precios de ítems), vacía los buffers y recarga
// conservando las secciones abiertas. Si el backend rechaza un cambio, los
// buffers se conservan para reintentar.
func (o *Orchestrator) SaveServicioEdits(ctx context.Context, s *Session, n Notifier, servicioID int64) error {
	sv, ok := s.FindServicio(servicioID)
	if !ok {
		return o.reject(OpSaveServicioEdits, n, fmt.Errorf("%w: servicio %d", domain.ErrNotFound, servicioID))
	}
	edits := s.EditsForServicio(servicioID)
	if edits.Empty() {
		return o.reject(OpSaveServicioEdits, n, fmt.Errorf("%w: no hay cambios que guardar", domain.ErrInvalidInput))
	}
	ch, err := validateEdits(edits)
	if err != nil {
		return o.reject(OpSaveServicioEdits, n, err)
	}

	return o.run(ctx, s, OpSaveServicioEdits, n, func(ctx context.Context, op PendingOperation) error {
		if ch.nombre != nil {
			if err := o.backend.UpdateServicioNombre(ctx, servicioID, *ch.nombre); err != nil {
				return err
			}
		}
		for _, id := range slices.Sorted(maps.Keys(ch.subcategorias)) {
			if err := o.backend.UpdateSubcategoriaNombre(ctx, id, ch.subcategorias[id]); err != nil {
				return err
			}
		}
		for _, id := range slices.Sorted(maps.Keys(ch.precios)) {
			if err := o.backend.UpdateItemPrecio(ctx, id, ch.precios[id]); err != nil {
				return err
			}
		}
		s.ClearServicioEdits(servicioID)
		if err := o.refreshKeepingExpansion(ctx, s, op.Kind); err != nil {
			return err
		}
		n.Success(fmt.Sprintf("Cambios del servicio %q guardados", sv.Nombre))
		return nil
	})
}
