package search

import "github.com/jhoicas/catalogo-servicios/internal/domain/entity"

// WithBeforeEvaluate instala una función que se ejecuta antes de evaluar cada ítem.
func WithBeforeEvaluate(fn func(entity.ItemDetalle)) Option {
	return func(e *Engine) { e.beforeEvaluate = fn }
}
