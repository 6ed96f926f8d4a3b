package admin

import (
	"errors"
	"fmt"
)

// FaultKind clasifica los fallos de una operación del panel.
type FaultKind string

const (
	// FaultValidation entrada mal formada o acción no permitida en el estado actual.
	FaultValidation FaultKind = "validation"
	// FaultNotFound referencia a una entidad que ya no existe.
	FaultNotFound FaultKind = "not_found"
	// FaultBackend el backend rechazó la operación; el mensaje se muestra tal cual.
	FaultBackend FaultKind = "backend"
	// FaultUnexpected pánico o fallo no previsto; se muestra un mensaje genérico.
	FaultUnexpected FaultKind = "unexpected"
)

// MsgUnexpected es el mensaje genérico para fallos inesperados.
const MsgUnexpected = "Ocurrió un error inesperado. Intente de nuevo."

// Fault es el error que devuelven las confirmaciones del orquestador.
type Fault struct {
	Kind FaultKind
	Op   OperationKind
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Op, f.Kind, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// KindOf devuelve la clase de fallo de err, o "" si no es un Fault.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if k := KindOf(err); k != "" {
		return string(k)
	}
	return string(FaultUnexpected)
}
