package dto

import "github.com/shopspring/decimal"

// CartItemRequest una línea del carrito a vender. Para productos de precio
// variable (pesables) ManualPrice es obligatorio y cada línea va por
// separado; para precio fijo Quantity agrupa unidades.
type CartItemRequest struct {
	ProductID   string           `json:"product_id"`
	Quantity    decimal.Decimal  `json:"quantity"`
	ManualPrice *decimal.Decimal `json:"manual_price,omitempty"`
}

// PaymentRequest un pago aplicado a la venta. MethodID vacío significa
// cuenta corriente del cliente (requiere customer_id en la venta).
type PaymentRequest struct {
	MethodID string          `json:"method_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// CompleteSaleRequest request de completar venta.
type CompleteSaleRequest struct {
	Items       []CartItemRequest `json:"items"`
	Payments    []PaymentRequest  `json:"payments"`
	CustomerID  string            `json:"customer_id,omitempty"`
	WithInvoice bool              `json:"with_invoice,omitempty"`
	CustomerDoc string            `json:"customer_doc,omitempty"` // CUIT/DNI para la factura
}

// CustomerPaymentRequest pago de un cliente a su cuenta corriente.
type CustomerPaymentRequest struct {
	CustomerID string          `json:"customer_id"`
	MethodID   string          `json:"method_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// ImportProductRequest una fila del import masivo de catálogo.
type ImportProductRequest struct {
	Name            string          `json:"name"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	Stock           int64           `json:"stock"`
	Category        string          `json:"category"`
	Barcode         string          `json:"barcode,omitempty"`
	IsVariablePrice bool            `json:"is_variable_price,omitempty"`
}

// ImportResult resumen del import masivo (no atómico entre lotes).
type ImportResult struct {
	Imported int `json:"imported"`
	Batches  int `json:"batches"`
}
