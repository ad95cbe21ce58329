package entity

import "github.com/shopspring/decimal"

// Tipos de caja / medio de pago.
const (
	MethodTypeCash    = "CASH"
	MethodTypeCard    = "CARD"
	MethodTypeDigital = "DIGITAL"
	MethodTypeOther   = "OTHER"
)

// CreditMethodName es el nombre reservado del pseudo-medio "cuenta corriente":
// un pago contra este nombre no acredita ninguna caja, se anota en el saldo
// del cliente.
const CreditMethodName = "Cuenta Corriente"

// MixedMethodName es el nombre que queda registrado en la venta cuando hay
// más de un medio de pago.
const MixedMethodName = "Mixto/Multiple"

// PaymentMethod es una caja registradora: un balde de saldo con nombre
// (caja chica, cuenta bancaria, billetera digital). El balance es un total
// de libro mayor: solo lo mueven ventas completadas, transferencias y pagos
// a proveedores/de clientes. Nombre y tipo son lo único editable a mano.
type PaymentMethod struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}
