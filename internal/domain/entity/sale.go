package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem es una línea de venta desnormalizada: copia nombre, precio y costo
// del producto al momento de vender. No es una referencia viva al catálogo.
type SaleItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PaymentDetail es un pago aplicado a una venta (puede haber varios).
type PaymentDetail struct {
	MethodID   string          `json:"methodId"`
	MethodName string          `json:"methodName"`
	Amount     decimal.Decimal `json:"amount"`
}

// InvoiceData datos de la factura electrónica asociada a la venta (stub AFIP).
type InvoiceData struct {
	CAE         string    `json:"cae"`
	CAEExpiry   time.Time `json:"caeExpiry"`
	InvoiceType string    `json:"invoiceType"` // "B" consumidor final, "A" responsable inscripto
	PuntoVenta  int       `json:"puntoVenta"`
	Number      int64     `json:"number"`
	CustomerDoc string    `json:"customerDoc,omitempty"` // CUIT/DNI del receptor
}

// Sale es una venta completada. Inmutable: no existe operación de update.
// PaymentMethodName es el nombre del medio principal, o "Mixto/Multiple"
// cuando hay más de un pago.
type Sale struct {
	ID                string          `json:"id"`
	Timestamp         time.Time       `json:"timestamp"`
	Items             []SaleItem      `json:"items"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalProfit       decimal.Decimal `json:"totalProfit"`
	PaymentMethodName string          `json:"paymentMethodName"`
	Payments          []PaymentDetail `json:"payments"`
	CustomerID        string          `json:"customerId,omitempty"` // solo ventas con cuenta corriente
	Invoice           *InvoiceData    `json:"invoice,omitempty"`
}
