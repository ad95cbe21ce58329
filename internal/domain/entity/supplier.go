package entity

import "github.com/shopspring/decimal"

// Supplier es un proveedor. Balance positivo = plata que se le debe.
// Solo lo mueven los asientos de Expense.
type Supplier struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	CUIT    string          `json:"cuit,omitempty"`
	Phone   string          `json:"phone,omitempty"`
	Email   string          `json:"email,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}
