package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrOperationInProgress  = errors.New("ya hay una operación en curso")
	ErrCategoriaConServicio = errors.New("la categoría todavía tiene servicios asociados")
	ErrSessionNotFound      = errors.New("sesión de administración no encontrada")
)
