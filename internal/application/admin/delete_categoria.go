package admin

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

// CascadeStep paso del borrado en cascada de una categoría.
type CascadeStep string

const (
	StepDeleteServicio  CascadeStep = "delete_servicio"
	StepDeleteCategoria CascadeStep = "delete_categoria"
	StepRefresh         CascadeStep = "refresh"
	StepCleanup         CascadeStep = "cleanup"
)

// CascadeFailure primer paso que falló. Los pasos anteriores quedan confirmados.
type CascadeFailure struct {
	Step           CascadeStep
	ServicioID     int64
	ServicioNombre string
	Err            error
}

// CascadeResult resultado del borrado de una categoría.
type CascadeResult struct {
	CategoriaID int64
	// Succeeded servicios borrados, en orden.
	Succeeded            []int64
	Failed               *CascadeFailure
	SubcategoriasRemoved int
}

// RequestDeleteCategoria abre la confirmación del borrado de una categoría con el
// número de servicios e ítems afectados. Un id desconocido no hace nada.
func (o *Orchestrator) RequestDeleteCategoria(s *Session, categoriaID int64) bool {
	cat, ok := s.FindCategoria(categoriaID)
	if !ok {
		o.log.Debug().Int64("categoria_id", categoriaID).Msg("admin: categoría no encontrada, se ignora la solicitud")
		return false
	}
	return s.OpenPending(PendingOperation{
		Kind:          OpDeleteCategoria,
		TargetID:      cat.ID,
		Name:          cat.Nombre,
		ServicioCount: len(s.ServiciosByCategoria(cat.ID)),
		ItemCount:     len(s.ItemsByCategoria(cat.ID)),
	})
}

// ConfirmDeleteCategoria borra la categoría solicitada en cascada:
//
//  1. toma los ítems y servicios de la categoría;
//  2. borra los servicios uno a uno, parando en el primero que falle;
//  3. borra la categoría;
//  4. recarga conservando las secciones abiertas;
//  5. si había ítems, borra las subcategorías que ya nadie referencia.
//
// No hay compensación: lo confirmado antes de un fallo queda confirmado y el
// resultado indica en qué paso se paró.
func (o *Orchestrator) ConfirmDeleteCategoria(ctx context.Context, s *Session, n Notifier) (*CascadeResult, error) {
	var res *CascadeResult
	err := o.run(ctx, s, OpDeleteCategoria, n, func(ctx context.Context, op PendingOperation) error {
		if err := requireTarget(op); err != nil {
			return err
		}
		res = &CascadeResult{CategoriaID: op.TargetID}
		return o.cascade(ctx, s, n, op, res)
	})
	return res, err
}

func (o *Orchestrator) cascade(ctx context.Context, s *Session, n Notifier, op PendingOperation, res *CascadeResult) error {
	affected := s.ItemsByCategoria(op.TargetID)
	servicios := s.ServiciosByCategoria(op.TargetID)

	for _, sv := range servicios {
		if _, err := o.backend.DeleteServicio(ctx, sv.ID); err != nil {
			res.Failed = &CascadeFailure{Step: StepDeleteServicio, ServicioID: sv.ID, ServicioNombre: sv.Nombre, Err: err}
			o.resyncAfterPartial(ctx, s, op, res)
			return fmt.Errorf("no se pudo eliminar el servicio %q: %w", sv.Nombre, err)
		}
		res.Succeeded = append(res.Succeeded, sv.ID)
	}
	o.recorder.AddCascadeServicios(len(res.Succeeded))

	if err := o.backend.DeleteCategoria(ctx, op.TargetID); err != nil {
		res.Failed = &CascadeFailure{Step: StepDeleteCategoria, Err: err}
		o.resyncAfterPartial(ctx, s, op, res)
		return fmt.Errorf("no se pudo eliminar la categoría %q: %w", op.Name, err)
	}

	if err := o.refreshKeepingExpansion(ctx, s, op.Kind); err != nil {
		res.Failed = &CascadeFailure{Step: StepRefresh, Err: err}
		return err
	}

	removed, err := o.cleanup(ctx, s, op.Kind, affected)
	res.SubcategoriasRemoved = removed
	if err != nil {
		res.Failed = &CascadeFailure{Step: StepCleanup, Err: err}
		return err
	}

	n.Success(fmt.Sprintf("Categoría %q eliminada junto con %d servicios", op.Name, len(res.Succeeded)))
	o.log.Info().Int64("categoria_id", op.TargetID).Ints64("servicios", res.Succeeded).
		Int("subcategorias_limpias", removed).Msg("admin: categoría eliminada en cascada")
	return nil
}

// resyncAfterPartial recarga los espejos cuando la cascada se paró después de
// confirmar algún servicio, para que un reintento no apunte a servicios que ya
// no existen. Un fallo de esta recarga solo se registra: el fallo que se informa
// es el del paso que paró la cascada.
func (o *Orchestrator) resyncAfterPartial(ctx context.Context, s *Session, op PendingOperation, res *CascadeResult) {
	if len(res.Succeeded) == 0 {
		return
	}
	if err := o.refreshKeepingExpansion(ctx, s, op.Kind); err != nil {
		o.log.Warn().Err(err).Int64("categoria_id", op.TargetID).Ints64("servicios", res.Succeeded).
			Msg("admin: no se pudo recargar tras una cascada parcial")
	}
}

// cleanup borra las subcategorías de affected que ya no usa ningún ítem y, si
// borró alguna, vuelve a recargar. Sin ítems afectados no llama al backend.
func (o *Orchestrator) cleanup(ctx context.Context, s *Session, kind OperationKind, affected []entity.ItemDetalle) (int, error) {
	if len(affected) == 0 {
		return 0, nil
	}
	removed, err := o.backend.CleanupUnusedSubcategorias(ctx, affected)
	if err != nil {
		return 0, fmt.Errorf("no se pudieron limpiar las subcategorías: %w", err)
	}
	if removed > 0 {
		if err := o.refreshKeepingExpansion(ctx, s, kind); err != nil {
			return removed, err
		}
	}
	return removed, nil
}
