package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/domain"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
)

// SupplierUseCase CRUD de proveedores. El balance lo mueven los asientos
// (AddExpense), no se edita acá.
type SupplierUseCase struct{}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase() *SupplierUseCase {
	return &SupplierUseCase{}
}

// List devuelve los proveedores.
func (uc *SupplierUseCase) List(s *session.Session) []entity.Supplier {
	return s.State().Suppliers()
}

// Create da de alta un proveedor con balance 0.
func (uc *SupplierUseCase) Create(ctx context.Context, s *session.Session, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if !access.Allowed(s.Role(), access.PermManageSuppliers) {
		return nil, nil
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	sp := entity.Supplier{
		ID:      uuid.New().String(),
		Name:    in.Name,
		CUIT:    in.CUIT,
		Phone:   in.Phone,
		Email:   in.Email,
		Balance: decimal.Zero,
	}
	if err := putOne(ctx, s, store.ColSuppliers, sp.ID, sp); err != nil {
		return nil, err
	}
	return &sp, nil
}

// Delete borra un proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, s *session.Session, id string) error {
	if !access.Allowed(s.Role(), access.PermManageSuppliers) {
		return nil
	}
	if s.State().SupplierByID(id) == nil {
		return domain.ErrNotFound
	}
	return deleteOne(ctx, s, store.ColSuppliers, id)
}

// CustomerUseCase CRUD de clientes con cuenta corriente. El balance lo mueven
// las ventas fiadas y los pagos del cliente.
type CustomerUseCase struct{}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase() *CustomerUseCase {
	return &CustomerUseCase{}
}

// List devuelve los clientes.
func (uc *CustomerUseCase) List(s *session.Session) []entity.Customer {
	return s.State().Customers()
}

// Create da de alta un cliente con balance 0.
func (uc *CustomerUseCase) Create(ctx context.Context, s *session.Session, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	if !access.Allowed(s.Role(), access.PermManageCustomers) {
		return nil, nil
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := entity.Customer{
		ID:      uuid.New().String(),
		Name:    in.Name,
		Phone:   in.Phone,
		DNI:     in.DNI,
		Notes:   in.Notes,
		Balance: decimal.Zero,
	}
	if err := putOne(ctx, s, store.ColCustomers, c.ID, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete borra un cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, s *session.Session, id string) error {
	if !access.Allowed(s.Role(), access.PermManageCustomers) {
		return nil
	}
	if s.State().CustomerByID(id) == nil {
		return domain.ErrNotFound
	}
	return deleteOne(ctx, s, store.ColCustomers, id)
}
