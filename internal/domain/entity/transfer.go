package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer es un movimiento de fondos entre dos cajas. Inmutable una vez
// creado; el neto entre ambas cajas es siempre cero.
type Transfer struct {
	ID           string          `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	FromMethodID string          `json:"fromMethodId"`
	ToMethodID   string          `json:"toMethodId"`
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note,omitempty"`
}
