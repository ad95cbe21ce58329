package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento contra un proveedor.
const (
	ExpensePurchase = "PURCHASE" // compra: sube la deuda con el proveedor
	ExpensePayment  = "PAYMENT"  // pago: baja la deuda y opcionalmente debita una caja
)

// Expense es un asiento en la cuenta de un proveedor. Inmutable.
type Expense struct {
	ID              string          `json:"id"`
	SupplierID      string          `json:"supplierId"`
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	Type            string          `json:"type"`
	PaymentMethodID string          `json:"paymentMethodId,omitempty"` // solo PAYMENT
}
