package treasury

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/domain"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

// AddExpenseUseCase asienta una compra o un pago contra un proveedor:
// alta del Expense + ajuste del saldo del proveedor + débito opcional de caja
// como unidad atómica. Un PAYMENT mayor al saldo deja el saldo negativo: no
// hay piso en cero.
type AddExpenseUseCase struct {
	log *logger.Logger
}

// NewAddExpenseUseCase construye el caso de uso.
func NewAddExpenseUseCase(log *logger.Logger) *AddExpenseUseCase {
	return &AddExpenseUseCase{log: log}
}

// Execute registra el asiento. Si el proveedor no existe la operación vuelve
// sin efecto y sin error. Rol sin permiso: sin efecto.
func (uc *AddExpenseUseCase) Execute(ctx context.Context, s *session.Session, in dto.AddExpenseRequest) error {
	if !access.Allowed(s.Role(), access.PermManageSuppliers) {
		return nil
	}
	if in.Type != entity.ExpensePurchase && in.Type != entity.ExpensePayment {
		return domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return domain.ErrInvalidInput
	}

	return s.Run(func() error {
		st := s.State()
		supplier := st.SupplierByID(in.SupplierID)
		if supplier == nil {
			uc.log.Warn().Str("supplier_id", in.SupplierID).Msg("asiento sobre proveedor inexistente, ignorado")
			return nil
		}

		expense := entity.Expense{
			ID:              uuid.New().String(),
			SupplierID:      supplier.ID,
			Date:            time.Now(),
			Amount:          in.Amount,
			Description:     in.Description,
			Type:            in.Type,
			PaymentMethodID: in.PaymentMethodID,
		}

		ws := &store.WriteSet{}
		expenseDoc, err := store.NewDocument(expense.ID, expense)
		if err != nil {
			return err
		}
		ws.Put(store.ColExpenses, expenseDoc)

		switch in.Type {
		case entity.ExpensePurchase:
			supplier.Balance = supplier.Balance.Add(in.Amount)
		case entity.ExpensePayment:
			supplier.Balance = supplier.Balance.Sub(in.Amount)
			if in.PaymentMethodID != "" {
				method := st.PaymentMethodByID(in.PaymentMethodID)
				if method == nil {
					return domain.ErrPaymentMethodMissing
				}
				method.Balance = method.Balance.Sub(in.Amount)
				methodDoc, err := store.NewDocument(method.ID, method)
				if err != nil {
					return err
				}
				ws.Put(store.ColPaymentMethods, methodDoc)
			}
		}
		supplierDoc, err := store.NewDocument(supplier.ID, supplier)
		if err != nil {
			return err
		}
		ws.Put(store.ColSuppliers, supplierDoc)

		if err := s.ApplyAndRefresh(ctx, ws); err != nil {
			return err
		}
		uc.log.Info().
			Str("supplier", supplier.Name).
			Str("type", in.Type).
			Str("amount", in.Amount.StringFixed(2)).
			Msg("asiento de proveedor registrado")
		return nil
	})
}
