package entity

import "github.com/shopspring/decimal"

// Customer es un cliente con cuenta corriente. Balance positivo = plata que
// debe (compró fiado). Lo mueven las ventas a crédito y los pagos del cliente.
type Customer struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone,omitempty"`
	DNI     string          `json:"dni,omitempty"`
	Notes   string          `json:"notes,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}
