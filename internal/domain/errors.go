package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidCredentials   = errors.New("credenciales inválidas")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInvalidState         = errors.New("estado inválido para la operación")
	ErrSaleAlreadyCancelled = errors.New("la venta ya fue anulada")
	ErrSessionClosed        = errors.New("la sesión de caja está cerrada")
	ErrOpenSessionExists    = errors.New("ya existe una sesión de caja abierta para el usuario")
	ErrComponentCycle       = errors.New("la receta de componentes genera un ciclo")
	ErrFractionNotAllowed   = errors.New("el producto no admite cantidades fraccionarias")
)
