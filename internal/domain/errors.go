package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrLedgerNotFound     = errors.New("asiento de inventario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNegativeStock      = errors.New("el stock no puede quedar negativo")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrAlreadyReserved    = errors.New("el pedido ya tiene stock reservado")
	ErrForbidden          = errors.New("acceso denegado")
)
