package admin

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

// RequestDeleteItem abre la confirmación del borrado de un ítem.
func (o *Orchestrator) RequestDeleteItem(s *Session, itemID int64) bool {
	it, ok := s.FindItem(itemID)
	if !ok {
		return false
	}
	return s.OpenPending(PendingOperation{Kind: OpDeleteItem, TargetID: it.ID, Name: it.Nombre})
}

// ConfirmDeleteItem borra el ítem, recarga y limpia su subcategoría si quedó sin uso.
func (o *Orchestrator) ConfirmDeleteItem(ctx context.Context, s *Session, n Notifier) error {
	return o.run(ctx, s, OpDeleteItem, n, func(ctx context.Context, op PendingOperation) error {
		if err := requireTarget(op); err != nil {
			return err
		}
		it, found := s.FindItem(op.TargetID)
		if err := o.backend.DeleteItem(ctx, op.TargetID); err != nil {
			return err
		}
		if err := o.refreshKeepingExpansion(ctx, s, op.Kind); err != nil {
			return err
		}
		if found && it.SubcategoriaID != nil {
			if _, err := o.cleanup(ctx, s, op.Kind, []entity.ItemDetalle{it}); err != nil {
				return err
			}
		}
		n.Success(fmt.Sprintf("Ítem %q eliminado", op.Name))
		return nil
	})
}

// RequestDeleteCaracteristica abre la confirmación del borrado de una
// característica con el número de servicios que la tienen asignada.
func (o *Orchestrator) RequestDeleteCaracteristica(s *Session, caracteristicaID int64) bool {
	c, ok := s.FindCaracteristica(caracteristicaID)
	if !ok {
		return false
	}
	return s.OpenPending(PendingOperation{
		Kind:          OpDeleteCaracteristica,
		TargetID:      c.ID,
		Name:          c.Nombre,
		ServicioCount: s.ServiciosWithCaracteristica(c.ID),
	})
}

// ConfirmDeleteCaracteristica borra la característica (el backend la desvincula
// antes de los servicios) y recarga.
func (o *Orchestrator) ConfirmDeleteCaracteristica(ctx context.Context, s *Session, n Notifier) error {
	return o.run(ctx, s, OpDeleteCaracteristica, n, func(ctx context.Context, op PendingOperation) error {
		if err := requireTarget(op); err != nil {
			return err
		}
		if err := o.backend.DeleteCaracteristica(ctx, op.TargetID); err != nil {
			return err
		}
		if err := o.refreshKeepingExpansion(ctx, s, op.Kind); err != nil {
			return err
		}
		n.Success(fmt.Sprintf("Característica %q eliminada", op.Name))
		return nil
	})
}
