package access

// Role es el rol activo de la sesión. Modelo liviano de dos roles: el
// vendedor opera la caja, el admin además edita catálogo, tesorería y
// configuración.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "vendedor"
)

// Permission identifica una operación gateada.
type Permission int

const (
	PermCompleteSale Permission = iota
	PermManageCatalog
	PermTransferFunds
	PermManageSuppliers
	PermManageCustomers
	PermManageSettings
	PermMigrateData
	PermViewReports
)

// sellerAllowed son las operaciones habilitadas para el rol vendedor.
// Todo lo demás requiere admin.
var sellerAllowed = map[Permission]bool{
	PermCompleteSale: true,
	PermViewReports:  true,
}

// Allowed decide si el rol puede invocar la operación. El chequeo vive en el
// call-site de cada operación; cuando falta permiso la operación retorna sin
// efecto (no es un sistema de capacidades, un cliente que llame directo lo
// saltea).
func Allowed(role Role, perm Permission) bool {
	if role == RoleAdmin {
		return true
	}
	return sellerAllowed[perm]
}

// CheckPIN valida el PIN de elevación a admin por igualdad de string.
// configured vacío equivale al PIN por defecto "0000".
func CheckPIN(configured, entered string) bool {
	if configured == "" {
		configured = "0000"
	}
	return configured == entered
}
