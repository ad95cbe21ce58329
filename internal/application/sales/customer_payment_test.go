package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/sales"
	"github.com/jmorales/ventaspro-api/internal/domain"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

// El pago de cuenta corriente genera una pseudo-venta sin líneas, acredita la
// caja y baja la deuda del cliente, todo junto.
func TestCustomerPayment_RegistraPseudoVenta(t *testing.T) {
	s := newTestSession(t)
	saleUC := completeSaleUC()
	payUC := sales.NewCustomerPaymentUseCase(logger.Nop())

	// Primero el cliente se endeuda con una venta fiada de 1000.
	_, err := saleUC.Execute(context.Background(), s, dto.CompleteSaleRequest{
		Items:      []dto.CartItemRequest{{ProductID: "p-coca", Quantity: decimal.NewFromInt(1)}},
		Payments:   []dto.PaymentRequest{{MethodID: "", Amount: price(1000)}},
		CustomerID: "c-juan",
	})
	require.NoError(t, err)

	sale, err := payUC.Execute(context.Background(), s, dto.CustomerPaymentRequest{
		CustomerID: "c-juan",
		MethodID:   "m-cash",
		Amount:     price(600),
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, sales.PaymentMethodNameCustomer, sale.PaymentMethodName)
	assert.Empty(t, sale.Items, "la pseudo-venta no lleva líneas de producto")
	assert.True(t, sale.TotalAmount.Equal(price(600)))

	st := s.State()
	assert.True(t, st.CustomerByID("c-juan").Balance.Equal(price(400)), "1000 de deuda - 600 pagados")
	assert.True(t, st.PaymentMethodByID("m-cash").Balance.Equal(price(600)), "la caja recibe el pago")
	assert.Len(t, st.Sales(), 2, "venta fiada + pseudo-venta del pago")
}

func TestCustomerPayment_ClienteInexistente(t *testing.T) {
	s := newTestSession(t)
	payUC := sales.NewCustomerPaymentUseCase(logger.Nop())

	_, err := payUC.Execute(context.Background(), s, dto.CustomerPaymentRequest{
		CustomerID: "c-nadie",
		MethodID:   "m-cash",
		Amount:     price(100),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.State().Sales())
}

// El vendedor no gestiona cuentas corrientes: la operación vuelve sin efecto
// y sin error.
func TestCustomerPayment_RolVendedorSinEfecto(t *testing.T) {
	s := newTestSession(t)
	s.SetRole(access.RoleSeller)
	payUC := sales.NewCustomerPaymentUseCase(logger.Nop())

	sale, err := payUC.Execute(context.Background(), s, dto.CustomerPaymentRequest{
		CustomerID: "c-juan",
		MethodID:   "m-cash",
		Amount:     price(100),
	})
	require.NoError(t, err)
	assert.Nil(t, sale)
	assert.Empty(t, s.State().Sales())
}
