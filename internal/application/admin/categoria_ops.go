package admin

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/catalogo-servicios/internal/application/dto"
	"github.com/jhoicas/catalogo-servicios/internal/domain"
	"github.com/jhoicas/catalogo-servicios/internal/domain/entity"
)

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateCategoria normaliza y valida nombre y color.
func ValidateCategoria(in dto.CategoriaRequest) (dto.CategoriaRequest, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Color = strings.TrimSpace(in.Color)
	if in.Nombre == "" {
		return in, fmt.Errorf("%w: el nombre de la categoría es obligatorio", domain.ErrInvalidInput)
	}
	if !colorRe.MatchString(in.Color) {
		return in, fmt.Errorf("%w: color %q, se espera #RRGGBB", domain.ErrInvalidInput, in.Color)
	}
	return in, nil
}

// RequestCreateCategoria abre el formulario de alta.
func (o *Orchestrator) RequestCreateCategoria(s *Session) bool {
	return s.OpenPending(PendingOperation{Kind: OpCreateCategoria})
}

// ConfirmCreateCategoria crea la categoría y recarga. Una entrada inválida se
// rechaza sin cerrar el formulario.
func (o *Orchestrator) ConfirmCreateCategoria(ctx context.Context, s *Session, n Notifier, in dto.CategoriaRequest) (*entity.Categoria, error) {
	in, err := ValidateCategoria(in)
	if err != nil {
		return nil, o.reject(OpCreateCategoria, n, err)
	}
	var created *entity.Categoria
	err = o.run(ctx, s, OpCreateCategoria, n, func(ctx context.Context, op PendingOperation) error {
		c, err := o.backend.CreateCategoria(ctx, in)
		if err != nil {
			return err
		}
		created = c
		if err := o.refreshKeepingExpansion(ctx, s, op.Kind); err != nil {
			return err
		}
		n.Success(fmt.Sprintf("Categoría %q creada", in.Nombre))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RequestUpdateCategoria abre el formulario de edición de una categoría existente.
func (o *Orchestrator) RequestUpdateCategoria(s *Session, categoriaID int64) bool {
	cat, ok := s.FindCategoria(categoriaID)
	if !ok {
		return false
	}
	return s.OpenPending(PendingOperation{Kind: OpUpdateCategoria, TargetID: cat.ID, Name: cat.Nombre})
}

// ConfirmUpdateCategoria guarda nombre y color de la categoría solicitada.
func (o *Orchestrator) ConfirmUpdateCategoria(ctx context.Context, s *Session, n Notifier, in dto.CategoriaRequest) error {
	in, err := ValidateCategoria(in)
	if err != nil {
		return o.reject(OpUpdateCategoria, n, err)
	}
	return o.run(ctx, s, OpUpdateCategoria, n, func(ctx context.Context, op PendingOperation) error {
		if err := requireTarget(op); err != nil {
			return err
		}
		if err := o.backend.UpdateCategoria(ctx, op.TargetID, in); err != nil {
			return err
		}
		if err := o.refreshKeepingExpansion(ctx, s, op.Kind); err != nil {
			return err
		}
		n.Success(fmt.Sprintf("Categoría %q actualizada", in.Nombre))
		return nil
	})
}
