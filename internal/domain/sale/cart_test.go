package sale_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/sale"
)

func price(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func fixedProduct() entity.Product {
	return entity.Product{
		ID:           "p-coca",
		Name:         "Coca Cola 500ml",
		CostPrice:    price(500),
		SellingPrice: price(1000),
		Stock:        10,
	}
}

func weighedProduct() entity.Product {
	return entity.Product{
		ID:              "p-queso",
		Name:            "Queso Cremoso",
		CostPrice:       price(4000),
		IsVariablePrice: true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas de precio fijo
// ──────────────────────────────────────────────────────────────────────────────

// Agregar dos veces el mismo producto de precio fijo suma cantidad sobre la
// línea existente, no crea una segunda línea.
func TestCart_PrecioFijoFusionaLineas(t *testing.T) {
	c := &sale.Cart{}
	p := fixedProduct()

	c.AddFixed(p)
	c.AddFixed(p)

	lines := c.Lines()
	require.Len(t, lines, 1, "el mismo producto fijo debe quedar en una sola línea")
	assert.True(t, lines[0].Quantity.Equal(decimal.NewFromInt(2)), "la cantidad debe acumularse")
	assert.True(t, lines[0].UnitPrice.Equal(p.SellingPrice), "debe usar el precio de lista")
}

// Agregar el mismo producto con cantidades explícitas acumula sobre la línea,
// no pisa la cantidad anterior.
func TestCart_PrecioFijoAcumulaCantidades(t *testing.T) {
	c := &sale.Cart{}
	p := fixedProduct()

	c.AddFixedQuantity(p, decimal.NewFromInt(2))
	c.AddFixedQuantity(p, decimal.NewFromInt(3))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.Equal(decimal.NewFromInt(5)), "2 + 3, nunca la última cantidad sola")
}

func TestCart_SetQuantityActualizaYElimina(t *testing.T) {
	c := &sale.Cart{}
	p := fixedProduct()
	c.AddFixed(p)

	c.SetQuantity(p.ID, decimal.NewFromInt(5))
	require.Len(t, c.Lines(), 1)
	assert.True(t, c.Lines()[0].Quantity.Equal(decimal.NewFromInt(5)))

	// Cantidad cero elimina la línea.
	c.SetQuantity(p.ID, decimal.Zero)
	assert.True(t, c.IsEmpty(), "cantidad <= 0 debe eliminar la línea")
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas pesables (precio manual)
// ──────────────────────────────────────────────────────────────────────────────

// Cada agregado pesable crea una línea independiente, aunque sea el mismo
// producto: medio kilo de queso a un precio y un cuarto a otro conviven.
func TestCart_PesableNuncaFusiona(t *testing.T) {
	c := &sale.Cart{}
	p := weighedProduct()

	c.AddWeighed(p, price(2500))
	c.AddWeighed(p, price(1200))

	lines := c.Lines()
	require.Len(t, lines, 2, "cada pesable es una línea nueva")
	assert.NotEqual(t, lines[0].Key, lines[1].Key, "las claves de línea deben ser distintas")
	assert.Equal(t, p.ID, lines[0].ProductID)
	assert.Equal(t, p.ID, lines[1].ProductID, "ambas líneas apuntan al producto real")
}

func TestCart_PesableYFijoConviven(t *testing.T) {
	c := &sale.Cart{}
	c.AddFixed(fixedProduct())
	c.AddWeighed(weighedProduct(), price(2500))
	c.AddFixed(fixedProduct())

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, sale.FixedPriceLine, lines[0].Kind)
	assert.Equal(t, sale.WeighedLine, lines[1].Kind)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales y stock
// ──────────────────────────────────────────────────────────────────────────────

func TestCart_Totales(t *testing.T) {
	c := &sale.Cart{}
	c.AddFixed(fixedProduct())
	c.SetQuantity("p-coca", decimal.NewFromInt(2)) // 2 x 1000, costo 2 x 500
	c.AddWeighed(weighedProduct(), price(2500))    // 1 x 2500, costo 4000

	amount, cost, profit := c.Totals()
	assert.True(t, amount.Equal(price(4500)), "monto: 2000 + 2500")
	assert.True(t, cost.Equal(price(5000)), "costo: 1000 + 4000")
	assert.True(t, profit.Equal(price(-500)), "la ganancia puede ser negativa con pesables baratos")
}

// Dos líneas pesables del mismo producto descuentan stock una sola vez por
// unidad de línea: el mapa agrega por producto real.
func TestCart_StockPorProductoAgrega(t *testing.T) {
	c := &sale.Cart{}
	p := weighedProduct()
	c.AddWeighed(p, price(2500))
	c.AddWeighed(p, price(1200))
	c.AddFixed(fixedProduct())

	totals := c.StockByProduct()
	require.Len(t, totals, 2)
	assert.True(t, totals["p-queso"].Equal(decimal.NewFromInt(2)))
	assert.True(t, totals["p-coca"].Equal(decimal.NewFromInt(1)))
}
