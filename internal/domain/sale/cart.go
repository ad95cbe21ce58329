package sale

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmorales/ventaspro-api/internal/domain/entity"
)

// LineKind distingue las variantes de línea de carrito. Reemplaza los ids
// compuestos "<productId>-<sufijo>" del esquema anterior: el tipo dice si la
// línea es de precio fijo o pesable, sin parsear strings.
type LineKind int

const (
	// FixedPriceLine usa el precio de lista del producto; agregar el mismo
	// producto otra vez suma cantidad sobre la línea existente.
	FixedPriceLine LineKind = iota
	// WeighedLine lleva precio manual (pesables / precio variable); cada
	// agregado crea una línea nueva, nunca se fusionan.
	WeighedLine
)

// Line es una línea del carrito. Key la identifica dentro del carrito;
// ProductID siempre es el id real del producto en el catálogo.
type Line struct {
	Key       string
	Kind      LineKind
	ProductID string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
}

// Subtotal de la línea.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(l.Quantity)
}

// Cart es el carrito en armado. No toca el catálogo: copia nombre, precio y
// costo al agregar (snapshot desnormalizado).
type Cart struct {
	lines []Line
}

// AddFixed agrega una unidad de un producto de precio fijo. Si ya hay una
// línea del mismo producto, incrementa su cantidad.
func (c *Cart) AddFixed(p entity.Product) {
	c.AddFixedQuantity(p, decimal.NewFromInt(1))
}

// AddFixedQuantity agrega qty unidades de un producto de precio fijo,
// acumulando sobre la línea existente si el producto ya está en el carrito.
func (c *Cart) AddFixedQuantity(p entity.Product, qty decimal.Decimal) {
	for i := range c.lines {
		if c.lines[i].Kind == FixedPriceLine && c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity = c.lines[i].Quantity.Add(qty)
			return
		}
	}
	c.lines = append(c.lines, Line{
		Key:       p.ID,
		Kind:      FixedPriceLine,
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  qty,
		UnitPrice: p.SellingPrice,
		UnitCost:  p.CostPrice,
	})
}

// AddWeighed agrega un producto pesable con precio manual. Siempre crea una
// línea nueva con clave propia.
func (c *Cart) AddWeighed(p entity.Product, manualPrice decimal.Decimal) {
	c.lines = append(c.lines, Line{
		Key:       uuid.New().String(),
		Kind:      WeighedLine,
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: manualPrice,
		UnitCost:  p.CostPrice,
	})
}

// SetQuantity fija la cantidad de una línea por clave. Cantidades <= 0
// eliminan la línea.
func (c *Cart) SetQuantity(key string, qty decimal.Decimal) {
	for i := range c.lines {
		if c.lines[i].Key == key {
			if !qty.IsPositive() {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
				return
			}
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Lines devuelve una copia de las líneas en orden de agregado.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Totals calcula monto, costo y ganancia del carrito.
func (c *Cart) Totals() (amount, cost, profit decimal.Decimal) {
	for _, l := range c.lines {
		amount = amount.Add(l.UnitPrice.Mul(l.Quantity))
		cost = cost.Add(l.UnitCost.Mul(l.Quantity))
	}
	profit = amount.Sub(cost)
	return amount, cost, profit
}

// StockByProduct agrega las cantidades por producto real. Varias líneas
// pesables del mismo producto descuentan una sola vez la suma (el descuento
// de stock nunca se aplica dos veces por venta).
func (c *Cart) StockByProduct() map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(c.lines))
	for _, l := range c.lines {
		totals[l.ProductID] = totals[l.ProductID].Add(l.Quantity)
	}
	return totals
}
