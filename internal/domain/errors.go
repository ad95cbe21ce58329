package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInvalidPIN           = errors.New("PIN incorrecto")
	ErrInsufficientPayment  = errors.New("el pago no cubre el total de la venta")
	ErrInsufficientFunds    = errors.New("fondos insuficientes en la caja de origen")
	ErrPaymentMethodMissing = errors.New("medio de pago no encontrado")
)
