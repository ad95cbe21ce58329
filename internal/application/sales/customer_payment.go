package sales

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

// PaymentMethodNameCustomer es el nombre reservado con el que queda
// registrada la pseudo-venta de un pago de cuenta corriente.
const PaymentMethodNameCustomer = "Pago Cuenta Corriente"

// CustomerPaymentUseCase registra el pago de un cliente sobre su cuenta
// corriente: una pseudo-venta sin líneas + crédito de caja + baja del saldo
// del cliente, como unidad atómica.
type CustomerPaymentUseCase struct {
	log *logger.Logger
}

// NewCustomerPaymentUseCase construye el caso de uso.
func NewCustomerPaymentUseCase(log *logger.Logger) *CustomerPaymentUseCase {
	return &CustomerPaymentUseCase{log: log}
}

// Execute registra el pago. Rol sin permiso: sin efecto.
func (uc *CustomerPaymentUseCase) Execute(ctx context.Context, s *session.Session, in dto.CustomerPaymentRequest) (*entity.Sale, error) {
	if !access.Allowed(s.Role(), access.PermManageCustomers) {
		return nil, nil
	}
	if in.CustomerID == "" || in.MethodID == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var sale *entity.Sale
	err := s.Run(func() error {
		st := s.State()
		customer := st.CustomerByID(in.CustomerID)
		if customer == nil {
			return domain.ErrNotFound
		}
		method := st.PaymentMethodByID(in.MethodID)
		if method == nil {
			return domain.ErrPaymentMethodMissing
		}

		sale = &entity.Sale{
			ID:                uuid.New().String(),
			Timestamp:         time.Now(),
			TotalAmount:       in.Amount,
			PaymentMethodName: PaymentMethodNameCustomer,
			Payments: []entity.PaymentDetail{{
				MethodID:   method.ID,
				MethodName: method.Name,
				Amount:     in.Amount,
			}},
			CustomerID: customer.ID,
		}
		method.Balance = method.Balance.Add(in.Amount)
		customer.Balance = customer.Balance.Sub(in.Amount)

		ws := &store.WriteSet{}
		saleDoc, err := store.NewDocument(sale.ID, sale)
		if err != nil {
			return err
		}
		ws.Put(store.ColSales, saleDoc)
		methodDoc, err := store.NewDocument(method.ID, method)
		if err != nil {
			return err
		}
		ws.Put(store.ColPaymentMethods, methodDoc)
		customerDoc, err := store.NewDocument(customer.ID, customer)
		if err != nil {
			return err
		}
		ws.Put(store.ColCustomers, customerDoc)

		if err := s.ApplyAndRefresh(ctx, ws); err != nil {
			return err
		}
		uc.log.Info().
			Str("customer_id", customer.ID).
			Str("amount", in.Amount.StringFixed(2)).
			Msg("pago de cuenta corriente registrado")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}
