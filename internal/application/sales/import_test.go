package sales_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/sales"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

func importRows(n int) []dto.ImportProductRequest {
	rows := make([]dto.ImportProductRequest, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, dto.ImportProductRequest{
			Name:         fmt.Sprintf("Producto %04d", i),
			CostPrice:    price(100),
			SellingPrice: price(200),
			Stock:        5,
			Category:     "Importados",
		})
	}
	return rows
}

func TestImport_UnSoloLote(t *testing.T) {
	s := newTestSession(t)
	uc := sales.NewImportProductsUseCase(logger.Nop())

	result, err := uc.Execute(context.Background(), s, importRows(10))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 10, result.Imported)
	assert.Equal(t, 1, result.Batches)
	// 2 del catálogo inicial + 10 importados.
	assert.Len(t, s.State().Products(), 12)
}

// Más de 450 filas se parte en lotes: 1000 filas son 3 lotes (450+450+100).
func TestImport_PartidoEnLotes(t *testing.T) {
	s := newTestSession(t)
	uc := sales.NewImportProductsUseCase(logger.Nop())

	result, err := uc.Execute(context.Background(), s, importRows(1000))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1000, result.Imported)
	assert.Equal(t, 3, result.Batches)
	assert.Len(t, s.State().Products(), 1002)
}

func TestImport_RolVendedorSinEfecto(t *testing.T) {
	s := newTestSession(t)
	s.SetRole(access.RoleSeller)
	uc := sales.NewImportProductsUseCase(logger.Nop())

	result, err := uc.Execute(context.Background(), s, importRows(10))
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Len(t, s.State().Products(), 2, "el catálogo no debe cambiar")
}
