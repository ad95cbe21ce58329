package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/application/usecase"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
	"github.com/jmorales/ventaspro-api/internal/infrastructure/localstore"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

func reportSession(t *testing.T, now time.Time) *session.Session {
	t.Helper()
	st, err := localstore.Open(afero.NewMemMapFs(), "data", logger.Nop())
	require.NoError(t, err)

	ws := &store.WriteSet{}
	sales := []entity.Sale{
		{
			ID: "s-1", Timestamp: now.AddDate(0, 0, -2),
			TotalAmount: decimal.NewFromInt(2000), TotalProfit: decimal.NewFromInt(1000),
			PaymentMethodName: "Efectivo",
			Items: []entity.SaleItem{{
				ProductID: "p-coca", Name: "Coca Cola 500ml",
				Quantity: decimal.NewFromInt(2), Subtotal: decimal.NewFromInt(2000),
			}},
			Payments: []entity.PaymentDetail{{MethodName: "Efectivo", Amount: decimal.NewFromInt(2000)}},
		},
		{
			ID: "s-2", Timestamp: now.AddDate(0, 0, -1),
			TotalAmount: decimal.NewFromInt(1500), TotalProfit: decimal.NewFromInt(500),
			PaymentMethodName: "Tarjeta",
			Items: []entity.SaleItem{{
				ProductID: "p-yerba", Name: "Yerba Mate 1kg",
				Quantity: decimal.NewFromInt(1), Subtotal: decimal.NewFromInt(1500),
			}},
			Payments: []entity.PaymentDetail{{MethodName: "Tarjeta", Amount: decimal.NewFromInt(1500)}},
		},
		// Fuera del período: no debe contar.
		{
			ID: "s-viejo", Timestamp: now.AddDate(0, 0, -60),
			TotalAmount: decimal.NewFromInt(9999), TotalProfit: decimal.NewFromInt(9999),
			PaymentMethodName: "Efectivo",
		},
	}
	for _, sl := range sales {
		doc, err := store.NewDocument(sl.ID, sl)
		require.NoError(t, err)
		ws.Put(store.ColSales, doc)
	}
	for _, p := range []entity.Product{
		{ID: "p-coca", Name: "Coca Cola 500ml", Stock: 3},
		{ID: "p-yerba", Name: "Yerba Mate 1kg", Stock: 40},
	} {
		doc, err := store.NewDocument(p.ID, p)
		require.NoError(t, err)
		ws.Put(store.ColProducts, doc)
	}
	require.NoError(t, st.Apply(context.Background(), ws))

	s, err := session.New(context.Background(), session.ModeLocal, "", st, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// El resumen agrega solo las ventas del período: totales, medios de pago,
// productos más vendidos y stock bajo.
func TestReport_AgregaElPeriodo(t *testing.T) {
	now := time.Now()
	s := reportSession(t, now)
	uc := usecase.NewReportUseCase()

	report := uc.Build(s, now.AddDate(0, 0, -30), now)

	assert.Equal(t, 2, report.SalesCount, "la venta vieja queda afuera")
	assert.True(t, report.Revenue.Equal(decimal.NewFromInt(3500)))
	assert.True(t, report.Profit.Equal(decimal.NewFromInt(1500)))

	require.Len(t, report.ByMethod, 2)
	require.Len(t, report.TopProducts, 2)
	assert.Equal(t, "Coca Cola 500ml", report.TopProducts[0].Name, "ordenado por facturación descendente")

	// Umbral default 5: la coca con stock 3 está baja, la yerba no.
	require.Len(t, report.LowStock, 1)
	assert.Equal(t, "p-coca", report.LowStock[0].ID)
}

func TestReport_PeriodoVacio(t *testing.T) {
	now := time.Now()
	s := reportSession(t, now)
	uc := usecase.NewReportUseCase()

	report := uc.Build(s, now.AddDate(0, 0, 10), now.AddDate(0, 0, 20))
	assert.Zero(t, report.SalesCount)
	assert.True(t, report.Revenue.IsZero())
	assert.Empty(t, report.TopProducts)
}
