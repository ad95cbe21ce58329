package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/sales"
	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/domain"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
	"github.com/jmorales/ventaspro-api/internal/infrastructure/localstore"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func price(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func mustDoc(t *testing.T, id string, v any) store.Document {
	t.Helper()
	doc, err := store.NewDocument(id, v)
	require.NoError(t, err)
	return doc
}

// newTestSession arma una sesión local en memoria con un catálogo mínimo:
// una gaseosa de precio fijo, un pesable, tres cajas y un cliente.
func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	st, err := localstore.Open(afero.NewMemMapFs(), "data", logger.Nop())
	require.NoError(t, err)

	ws := &store.WriteSet{}
	ws.Put(store.ColProducts, mustDoc(t, "p-coca", entity.Product{
		ID: "p-coca", Name: "Coca Cola 500ml", CostPrice: price(500), SellingPrice: price(1000), Stock: 10,
	}))
	ws.Put(store.ColProducts, mustDoc(t, "p-queso", entity.Product{
		ID: "p-queso", Name: "Queso Cremoso", CostPrice: price(4000), IsVariablePrice: true,
	}))
	ws.Put(store.ColPaymentMethods, mustDoc(t, "m-cash", entity.PaymentMethod{
		ID: "m-cash", Name: "Efectivo", Type: entity.MethodTypeCash, Balance: decimal.Zero,
	}))
	ws.Put(store.ColPaymentMethods, mustDoc(t, "m-card-a", entity.PaymentMethod{
		ID: "m-card-a", Name: "Tarjeta A", Type: entity.MethodTypeCard, Balance: decimal.Zero,
	}))
	ws.Put(store.ColPaymentMethods, mustDoc(t, "m-card-b", entity.PaymentMethod{
		ID: "m-card-b", Name: "Tarjeta B", Type: entity.MethodTypeCard, Balance: decimal.Zero,
	}))
	ws.Put(store.ColCustomers, mustDoc(t, "c-juan", entity.Customer{
		ID: "c-juan", Name: "Juan", Balance: decimal.Zero,
	}))
	require.NoError(t, st.Apply(context.Background(), ws))

	s, err := session.New(context.Background(), session.ModeLocal, "", st, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func completeSaleUC() *sales.CompleteSaleUseCase {
	return sales.NewCompleteSaleUseCase(nil, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta simple
// ──────────────────────────────────────────────────────────────────────────────

// Dos unidades a precio de lista pagadas justas en efectivo: la venta, el
// stock y el saldo de caja cambian juntos.
func TestCompleteSale_VentaSimple(t *testing.T) {
	s := newTestSession(t)
	uc := completeSaleUC()

	sale, err := uc.Execute(context.Background(), s, dto.CompleteSaleRequest{
		Items:    []dto.CartItemRequest{{ProductID: "p-coca", Quantity: decimal.NewFromInt(2)}},
		Payments: []dto.PaymentRequest{{MethodID: "m-cash", Amount: price(2000)}},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.True(t, sale.TotalAmount.Equal(price(2000)), "total: 2 x 1000")
	assert.True(t, sale.TotalProfit.Equal(price(1000)), "ganancia: 2 x (1000 - 500)")
	assert.Equal(t, "Efectivo", sale.PaymentMethodName)

	st := s.State()
	assert.Equal(t, int64(8), st.ProductByID("p-coca").Stock, "el stock baja con la venta")
	assert.True(t, st.PaymentMethodByID("m-cash").Balance.Equal(price(2000)), "la caja se acredita")
	require.Len(t, st.Sales(), 1, "la venta queda persistida")
}

// Pago insuficiente: nada se escribe. Ni la venta, ni el stock, ni las cajas.
func TestCompleteSale_PagoInsuficienteNoEscribeNada(t *testing.T) {
	s := newTestSession(t)
	uc := completeSaleUC()

	_, err := uc.Execute(context.Background(), s, dto.CompleteSaleRequest{
		Items:    []dto.CartItemRequest{{ProductID: "p-coca", Quantity: decimal.NewFromInt(2)}},
		Payments: []dto.PaymentRequest{{MethodID: "m-cash", Amount: price(1500)}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientPayment)

	st := s.State()
	assert.Equal(t, int64(10), st.ProductByID("p-coca").Stock, "el stock no debe cambiar")
	assert.True(t, st.PaymentMethodByID("m-cash").Balance.IsZero(), "la caja no debe cambiar")
	assert.Empty(t, st.Sales(), "no debe quedar venta registrada")
}

// El mismo producto fijo repetido en el pedido suma cantidades: 2 + 3 cobran
// y descuentan 5 unidades, no las 3 del último renglón.
func TestCompleteSale_ProductoRepetidoSumaCantidades(t *testing.T) {
	s := newTestSession(t)
	uc := completeSaleUC()

	sale, err := uc.Execute(context.Background(), s, dto.CompleteSaleRequest{
		Items: []dto.CartItemRequest{
			{ProductID: "p-coca", Quantity: decimal.NewFromInt(2)},
			{ProductID: "p-coca", Quantity: decimal.NewFromInt(3)},
		},
		Payments: []dto.PaymentRequest{{MethodID: "m-cash", Amount: price(5000)}},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.True(t, sale.TotalAmount.Equal(price(5000)), "total: 5 x 1000")
	require.Len(t, sale.Items, 1, "una sola línea acumulada")
	assert.Equal(t, int64(5), s.State().ProductByID("p-coca").Stock, "10 - 5")
}

// Una cantidad fraccionaria en un producto de precio fijo se rechaza: el
// stock se descuenta en unidades enteras y cobrar 2.5 descontando 2 rompería
// el inventario.
func TestCompleteSale_CantidadFraccionariaRechazada(t *testing.T) {
	s := newTestSession(t)
	uc := completeSaleUC()

	_, err := uc.Execute(context.Background(), s, dto.CompleteSaleRequest{
		Items:    []dto.CartItemRequest{{ProductID: "p-coca", Quantity: price(2.5)}},
		Payments: []dto.PaymentRequest{{MethodID: "m-cash", Amount: price(2500)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	st := s.State()
	assert.Equal(t, int64(10), st.ProductByID("p-coca").Stock, "el stock no debe cambiar")
	assert.Empty(t, st.Sales())
}

// La suma de pagos puede quedar hasta 0.01 por debajo del total (redondeo de
// la UI) y la venta igual se acepta.
func TestCompleteSale_ToleranciaDeRedondeo(t *testing.T) {
	s := newTestSession(t)
	uc := completeSaleUC()

	sale, err := uc.Execute(context.Background(), s, dto.CompleteSaleRequest{
		Items:    []dto.CartItemRequest{{ProductID: "p-coca", Quantity: decimal.NewFromInt(2)}},
		Payments: []dto.PaymentRequest{{MethodID: "m-cash", Amount: price(1999.99)}},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.True(t, sale.TotalAmount.Equal(price(2000)), "el total registrado es el del carrito, no lo pagado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos mixtos
// ──────────────────────────────────────────────────────────────────────────────

// Con más de un medio la venta queda como "Mixto/Multiple" y cada caja se
// acredita por su parte.
func TestCompleteSale_PagoMixto(t *testing.T) {
	s := newTestSession(t)
	uc := completeSaleUC()

	sale, err := uc.Execute(context.Background(), s, dto.CompleteSaleRequest{
		Items: []dto.CartItemRequest{{ProductID: "p-coca", Quantity: decimal.NewFromInt(1)}},
		Payments: []dto.PaymentRequest{
			{MethodID: "m-card-a", Amount: price(600)},
			{MethodID: "m-card-b", Amount: price(400)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, entity.MixedMethodName, sale.PaymentMethodName)
	require.Len(t, sale.Payments, 2, "el detalle conserva cada pago")

	st := s.State()
	assert.True(t, st.PaymentMethodByID("m-card-a").Balance.Equal(price(600)))
	assert.True(t, st.PaymentMethodByID("m-card-b").Balance.Equal(price(400)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuenta corriente
// ──────────────────────────────────────────────────────────────────────────────

// Un pago sin caja (MethodID vacío) se anota como deuda del cliente: ninguna
// caja se acredita y el saldo del cliente sube.
func TestCompleteSale_CuentaCorriente(t *testing.T) {
	s := newTestSession(t)
	uc := completeSaleUC()

	sale, err := uc.Execute(context.Background(), s, dto.CompleteSaleRequest{
		Items:      []dto.CartItemRequest{{ProductID: "p-coca", Quantity: decimal.NewFromInt(1)}},
		Payments:   []dto.PaymentRequest{{MethodID: "", Amount: price(1000)}},
		CustomerID: "c-juan",
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, entity.CreditMethodName, sale.Payments[0].MethodName)

	st := s.State()
	assert.True(t, st.CustomerByID("c-juan").Balance.Equal(price(1000)), "la deuda del cliente sube")
	assert.True(t, st.PaymentMethodByID("m-cash").Balance.IsZero(), "ninguna caja se acredita")
}

// Cuenta corriente sin cliente asociado es inválida.
func TestCompleteSale_CuentaCorrienteSinClienteFalla(t *testing.T) {
	s := newTestSession(t)
	uc := completeSaleUC()

	_, err := uc.Execute(context.Background(), s, dto.CompleteSaleRequest{
		Items:    []dto.CartItemRequest{{ProductID: "p-coca", Quantity: decimal.NewFromInt(1)}},
		Payments: []dto.PaymentRequest{{MethodID: "", Amount: price(1000)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.State().Sales())
}

// ──────────────────────────────────────────────────────────────────────────────
// Pesables y roles
// ──────────────────────────────────────────────────────────────────────────────

// Un pesable requiere precio manual; sin precio la venta no arranca.
func TestCompleteSale_PesableConPrecioManual(t *testing.T) {
	s := newTestSession(t)
	uc := completeSaleUC()

	_, err := uc.Execute(context.Background(), s, dto.CompleteSaleRequest{
		Items:    []dto.CartItemRequest{{ProductID: "p-queso", Quantity: decimal.NewFromInt(1)}},
		Payments: []dto.PaymentRequest{{MethodID: "m-cash", Amount: price(2500)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "pesable sin precio manual")

	manual := price(2500)
	sale, err := uc.Execute(context.Background(), s, dto.CompleteSaleRequest{
		Items:    []dto.CartItemRequest{{ProductID: "p-queso", Quantity: decimal.NewFromInt(1), ManualPrice: &manual}},
		Payments: []dto.PaymentRequest{{MethodID: "m-cash", Amount: price(2500)}},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.True(t, sale.TotalAmount.Equal(price(2500)))
	assert.True(t, sale.TotalProfit.Equal(price(-1500)), "ganancia negativa: precio manual menor al costo")
}

// El vendedor puede vender: es su operación principal.
func TestCompleteSale_RolVendedorPuedeVender(t *testing.T) {
	s := newTestSession(t)
	s.SetRole(access.RoleSeller)
	uc := completeSaleUC()

	sale, err := uc.Execute(context.Background(), s, dto.CompleteSaleRequest{
		Items:    []dto.CartItemRequest{{ProductID: "p-coca", Quantity: decimal.NewFromInt(1)}},
		Payments: []dto.PaymentRequest{{MethodID: "m-cash", Amount: price(1000)}},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)
}

// Dos ventas seguidas validan cada una contra el stock ya descontado por la
// anterior: el estado se refresca dentro de la misma operación.
func TestCompleteSale_VentasConsecutivasVenStockActualizado(t *testing.T) {
	s := newTestSession(t)
	uc := completeSaleUC()

	for i := 0; i < 2; i++ {
		_, err := uc.Execute(context.Background(), s, dto.CompleteSaleRequest{
			Items:    []dto.CartItemRequest{{ProductID: "p-coca", Quantity: decimal.NewFromInt(3)}},
			Payments: []dto.PaymentRequest{{MethodID: "m-cash", Amount: price(3000)}},
		})
		require.NoError(t, err)
	}
	assert.Equal(t, int64(4), s.State().ProductByID("p-coca").Stock, "10 - 3 - 3")
	assert.True(t, s.State().PaymentMethodByID("m-cash").Balance.Equal(price(6000)))
}
