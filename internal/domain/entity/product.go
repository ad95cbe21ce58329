package entity

import "github.com/shopspring/decimal"

// Product representa un artículo del catálogo. Stock vive en el producto
// (negocio de un solo local); solo lo descuentan las ventas completadas.
// IsVariablePrice marca productos pesables o de precio manual (fiambrería):
// SellingPrice queda en 0 y el precio se ingresa por transacción.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	SellingPrice    decimal.Decimal `json:"sellingPrice"` // 0 si es precio variable
	Stock           int64           `json:"stock"`        // se espera >= 0; no se fuerza
	Category        string          `json:"category"`
	Barcode         string          `json:"barcode,omitempty"`
	IsVariablePrice bool            `json:"isVariablePrice"`
}
