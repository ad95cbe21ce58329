package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmorales/ventaspro-api/internal/application/access"
)

// El admin pasa todo; el vendedor solo vende y mira reportes.
func TestAllowed_MatrizDeRoles(t *testing.T) {
	adminOnly := []access.Permission{
		access.PermManageCatalog,
		access.PermTransferFunds,
		access.PermManageSuppliers,
		access.PermManageCustomers,
		access.PermManageSettings,
		access.PermMigrateData,
	}
	for _, perm := range adminOnly {
		assert.True(t, access.Allowed(access.RoleAdmin, perm))
		assert.False(t, access.Allowed(access.RoleSeller, perm), "el vendedor no debe pasar permisos de admin")
	}

	assert.True(t, access.Allowed(access.RoleSeller, access.PermCompleteSale), "vender es la operación del vendedor")
	assert.True(t, access.Allowed(access.RoleSeller, access.PermViewReports))
}

func TestCheckPIN(t *testing.T) {
	// Sin PIN configurado vale el default "0000".
	assert.True(t, access.CheckPIN("", "0000"))
	assert.False(t, access.CheckPIN("", "1234"))

	// Con PIN configurado solo vale ese.
	assert.True(t, access.CheckPIN("4321", "4321"))
	assert.False(t, access.CheckPIN("4321", "0000"), "el default deja de valer cuando hay PIN propio")
	assert.False(t, access.CheckPIN("4321", ""))
}
