package admin

import (
	"context"
	"fmt"
)

// RequestDeleteServicio abre la confirmación del borrado de un servicio con el
// resumen de lo que se va a borrar. Un id desconocido no hace nada.
func (o *Orchestrator) RequestDeleteServicio(s *Session, servicioID int64) bool {
	sv, ok := s.FindServicio(servicioID)
	if !ok {
		o.log.Debug().Int64("servicio_id", servicioID).Msg("admin: servicio no encontrado, se ignora la solicitud")
		return false
	}
	return s.OpenPending(PendingOperation{
		Kind:              OpDeleteServicio,
		TargetID:          sv.ID,
		Name:              sv.Nombre,
		ItemCount:         len(s.ItemsByServicio(sv.ID)),
		SubcategoriaCount: len(sv.Subcategorias),
	})
}

// ConfirmDeleteServicio borra el servicio solicitado (el backend borra en cascada
// sus ítems y subcategorías) y recarga conservando las secciones abiertas.
func (o *Orchestrator) ConfirmDeleteServicio(ctx context.Context, s *Session, n Notifier) error {
	return o.run(ctx, s, OpDeleteServicio, n, func(ctx context.Context, op PendingOperation) error {
		if err := requireTarget(op); err != nil {
			return err
		}
		res, err := o.backend.DeleteServicio(ctx, op.TargetID)
		if err != nil {
			return err
		}
		if err := o.refreshKeepingExpansion(ctx, s, op.Kind); err != nil {
			return err
		}
		msg := fmt.Sprintf("Servicio %q eliminado", op.Name)
		if res != nil {
			msg += fmt.Sprintf(": %d ítems y %d subcategorías eliminados", res.ItemsDeleted, res.SubcategoriasDeleted)
		}
		n.Success(msg)
		o.log.Info().Int64("servicio_id", op.TargetID).Msg("admin: servicio eliminado")
		return nil
	})
}
