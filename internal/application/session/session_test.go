package session_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
	"github.com/jmorales/ventaspro-api/internal/infrastructure/localstore"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

func newSession(t *testing.T, profile *entity.StoreProfile) *session.Session {
	t.Helper()
	st, err := localstore.Open(afero.NewMemMapFs(), "data", logger.Nop())
	require.NoError(t, err)
	if profile != nil {
		raw, err := json.Marshal(profile)
		require.NoError(t, err)
		require.NoError(t, st.PutSetting(context.Background(), store.KeyStoreProfile, raw, false))
	}
	s, err := session.New(context.Background(), session.ModeLocal, "", st, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// La sesión arranca como admin; bajar a vendedor y volver requiere el PIN.
func TestSession_ElevarConPINPorDefecto(t *testing.T) {
	s := newSession(t, nil)
	assert.Equal(t, access.RoleAdmin, s.Role())

	s.SetRole(access.RoleSeller)
	assert.Equal(t, access.RoleSeller, s.Role())

	assert.False(t, s.Elevate("1234"), "PIN equivocado no eleva")
	assert.Equal(t, access.RoleSeller, s.Role())

	assert.True(t, s.Elevate("0000"), "sin PIN configurado vale el default")
	assert.Equal(t, access.RoleAdmin, s.Role())
}

func TestSession_ElevarConPINConfigurado(t *testing.T) {
	s := newSession(t, &entity.StoreProfile{SellerPIN: "4321"})
	s.SetRole(access.RoleSeller)

	assert.False(t, s.Elevate("0000"), "el default deja de valer con PIN propio")
	assert.True(t, s.Elevate("4321"))
	assert.Equal(t, access.RoleAdmin, s.Role())
}

// El estado inicial se carga del backend al construir la sesión.
func TestSession_CargaEstadoInicial(t *testing.T) {
	st, err := localstore.Open(afero.NewMemMapFs(), "data", logger.Nop())
	require.NoError(t, err)

	doc, err := store.NewDocument("p-1", entity.Product{ID: "p-1", Name: "Yerba"})
	require.NoError(t, err)
	ws := &store.WriteSet{}
	ws.Put(store.ColProducts, doc)
	require.NoError(t, st.Apply(context.Background(), ws))

	s, err := session.New(context.Background(), session.ModeLocal, "", st, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.Len(t, s.State().Products(), 1)
	assert.Equal(t, "Yerba", s.State().Products()[0].Name)
}

// Cerrar la sesión limpia el estado en memoria.
func TestSession_CloseLimpiaEstado(t *testing.T) {
	s := newSession(t, nil)
	require.NoError(t, s.Close())
	assert.Empty(t, s.State().Products())
}
