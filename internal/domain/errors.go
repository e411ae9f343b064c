package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrStorage            = errors.New("error de persistencia")
	ErrAlreadyConverted   = errors.New("la cotización ya fue convertida en factura")
	ErrImmutableDocument  = errors.New("el documento ya no admite modificaciones")
	ErrIndexOutOfRange    = errors.New("índice de línea fuera de rango")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)
