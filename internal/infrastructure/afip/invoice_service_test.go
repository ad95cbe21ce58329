package afip_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/infrastructure/afip"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

func testSale() *entity.Sale {
	return &entity.Sale{
		ID:          "sale-1",
		Timestamp:   time.Now(),
		TotalAmount: decimal.NewFromInt(2000),
	}
}

func testProfile() entity.StoreProfile {
	return entity.StoreProfile{BusinessName: "Almacén Don José", CUIT: "30712345678"}
}

// El CAE simulado respeta el formato real: 14 dígitos y vigencia de 10 días.
func TestAuthorize_FormatoDelCAE(t *testing.T) {
	svc := afip.NewInvoiceService(3, "homo", logger.Nop())

	inv, err := svc.Authorize(context.Background(), testSale(), testProfile(), "")
	require.NoError(t, err)

	require.Len(t, inv.CAE, 14)
	for _, r := range inv.CAE {
		assert.True(t, r >= '0' && r <= '9', "el CAE es numérico")
	}
	assert.Equal(t, 3, inv.PuntoVenta)

	expiry := time.Until(inv.CAEExpiry)
	assert.Greater(t, expiry, 9*24*time.Hour)
	assert.LessOrEqual(t, expiry, 10*24*time.Hour)
}

// CUIT de 11 dígitos del receptor: factura A. Cualquier otro caso: factura B.
func TestAuthorize_TipoDeComprobante(t *testing.T) {
	svc := afip.NewInvoiceService(1, "homo", logger.Nop())

	invA, err := svc.Authorize(context.Background(), testSale(), testProfile(), "20304050607")
	require.NoError(t, err)
	assert.Equal(t, "A", invA.InvoiceType)
	assert.Equal(t, "20304050607", invA.CustomerDoc)

	invB, err := svc.Authorize(context.Background(), testSale(), testProfile(), "")
	require.NoError(t, err)
	assert.Equal(t, "B", invB.InvoiceType)

	invDNI, err := svc.Authorize(context.Background(), testSale(), testProfile(), "30123456")
	require.NoError(t, err)
	assert.Equal(t, "B", invDNI.InvoiceType, "un DNI no alcanza para factura A")
}

// La numeración es secuencial e independiente por tipo de comprobante.
func TestAuthorize_NumeracionPorTipo(t *testing.T) {
	svc := afip.NewInvoiceService(1, "homo", logger.Nop())

	first, err := svc.Authorize(context.Background(), testSale(), testProfile(), "")
	require.NoError(t, err)
	second, err := svc.Authorize(context.Background(), testSale(), testProfile(), "")
	require.NoError(t, err)
	otherType, err := svc.Authorize(context.Background(), testSale(), testProfile(), "20304050607")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Number)
	assert.Equal(t, int64(2), second.Number)
	assert.Equal(t, int64(1), otherType.Number, "la factura A arranca su propia numeración")
}

func TestAuthorize_VentaNula(t *testing.T) {
	svc := afip.NewInvoiceService(1, "homo", logger.Nop())
	_, err := svc.Authorize(context.Background(), nil, testProfile(), "")
	require.Error(t, err)
}
