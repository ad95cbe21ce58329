package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/application/usecase"
	"github.com/jmorales/ventaspro-api/internal/domain"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
	"github.com/jmorales/ventaspro-api/internal/infrastructure/localstore"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	st, err := localstore.Open(afero.NewMemMapFs(), "data", logger.Nop())
	require.NoError(t, err)

	ws := &store.WriteSet{}
	for _, p := range []entity.Product{
		{ID: "p-1", Name: "Lácteo Entero", Category: "Lácteos", Barcode: "7790000000011"},
		{ID: "p-2", Name: "Café Torrado", Category: "Almacén"},
		{ID: "p-3", Name: "Azúcar", Category: "Almacén"},
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

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda
// ──────────────────────────────────────────────────────────────────────────────

// "lacteo" sin tilde encuentra "Lácteo": la búsqueda normaliza mayúsculas y
// marcas diacríticas en ambos lados.
func TestList_BusquedaInsensibleATildes(t *testing.T) {
	s := newTestSession(t)
	uc := usecase.NewProductUseCase()

	found := uc.List(s, "lacteo")
	require.Len(t, found, 1)
	assert.Equal(t, "Lácteo Entero", found[0].Name)

	found = uc.List(s, "CAFE")
	require.Len(t, found, 1)
	assert.Equal(t, "Café Torrado", found[0].Name)
}

// La categoría también matchea, y el código de barras solo por igualdad
// exacta (el escáner manda el código completo).
func TestList_CategoriaYBarcode(t *testing.T) {
	s := newTestSession(t)
	uc := usecase.NewProductUseCase()

	assert.Len(t, uc.List(s, "almacen"), 2, "matchea por categoría normalizada")

	found := uc.List(s, "7790000000011")
	require.Len(t, found, 1)
	assert.Equal(t, "p-1", found[0].ID)

	assert.Empty(t, uc.List(s, "77900000"), "barcode parcial no matchea")
}

func TestList_SinQueryDevuelveTodo(t *testing.T) {
	s := newTestSession(t)
	uc := usecase.NewProductUseCase()
	assert.Len(t, uc.List(s, ""), 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD y roles
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateUpdateDelete(t *testing.T) {
	s := newTestSession(t)
	uc := usecase.NewProductUseCase()

	created, err := uc.Create(context.Background(), s, dto.CreateProductRequest{
		Name:         "Fideos",
		CostPrice:    decimal.NewFromInt(500),
		SellingPrice: decimal.NewFromInt(900),
		Stock:        12,
		Category:     "Almacén",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Len(t, s.State().Products(), 4)

	newStock := int64(20)
	updated, err := uc.Update(context.Background(), s, created.ID, dto.UpdateProductRequest{Stock: &newStock})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, int64(20), updated.Stock)
	assert.Equal(t, "Fideos", updated.Name, "los campos no enviados no cambian")

	require.NoError(t, uc.Delete(context.Background(), s, created.ID))
	assert.Len(t, s.State().Products(), 3)

	err = uc.Delete(context.Background(), s, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// El vendedor no edita catálogo: la operación vuelve sin efecto y sin error.
func TestCatalogo_RolVendedorSinEfecto(t *testing.T) {
	s := newTestSession(t)
	s.SetRole(access.RoleSeller)
	uc := usecase.NewProductUseCase()

	created, err := uc.Create(context.Background(), s, dto.CreateProductRequest{Name: "Fideos"})
	require.NoError(t, err)
	assert.Nil(t, created)
	assert.Len(t, s.State().Products(), 3, "el catálogo no debe cambiar")

	require.NoError(t, uc.Delete(context.Background(), s, "p-1"))
	assert.Len(t, s.State().Products(), 3)
}
