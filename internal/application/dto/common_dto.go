package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	Name            string          `json:"name"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	Stock           int64           `json:"stock"`
	Category        string          `json:"category"`
	Barcode         string          `json:"barcode,omitempty"`
	IsVariablePrice bool            `json:"is_variable_price,omitempty"`
}

// UpdateProductRequest edición parcial de producto.
type UpdateProductRequest struct {
	Name            *string          `json:"name,omitempty"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice    *decimal.Decimal `json:"selling_price,omitempty"`
	Stock           *int64           `json:"stock,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Barcode         *string          `json:"barcode,omitempty"`
	IsVariablePrice *bool            `json:"is_variable_price,omitempty"`
}

// CreatePaymentMethodRequest alta de caja. El balance arranca en 0 y después
// solo lo mueven las operaciones compuestas.
type CreatePaymentMethodRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// UpdatePaymentMethodRequest edición de caja: solo nombre y tipo.
type UpdatePaymentMethodRequest struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}

// TransferRequest movimiento entre cajas.
type TransferRequest struct {
	FromMethodID string          `json:"from_method_id"`
	ToMethodID   string          `json:"to_method_id"`
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note,omitempty"`
}

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Name  string `json:"name"`
	CUIT  string `json:"cuit,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// AddExpenseRequest asiento contra un proveedor.
type AddExpenseRequest struct {
	SupplierID      string          `json:"supplier_id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	Type            string          `json:"type"` // PURCHASE | PAYMENT
	PaymentMethodID string          `json:"payment_method_id,omitempty"`
}

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	DNI   string `json:"dni,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// RegisterRequest alta de cuenta.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse token emitido.
type AuthResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// ElevateRequest elevación de rol con PIN.
type ElevateRequest struct {
	PIN string `json:"pin"`
}
