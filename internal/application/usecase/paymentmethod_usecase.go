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

// PaymentMethodUseCase CRUD de cajas. El balance nunca se edita directo:
// arranca en 0 y lo mueven ventas, transferencias y pagos.
type PaymentMethodUseCase struct{}

// NewPaymentMethodUseCase construye el caso de uso.
func NewPaymentMethodUseCase() *PaymentMethodUseCase {
	return &PaymentMethodUseCase{}
}

// List devuelve las cajas.
func (uc *PaymentMethodUseCase) List(s *session.Session) []entity.PaymentMethod {
	return s.State().PaymentMethods()
}

// Create da de alta una caja con balance 0.
func (uc *PaymentMethodUseCase) Create(ctx context.Context, s *session.Session, in dto.CreatePaymentMethodRequest) (*entity.PaymentMethod, error) {
	if !access.Allowed(s.Role(), access.PermTransferFunds) {
		return nil, nil
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validMethodType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	m := entity.PaymentMethod{
		ID:      uuid.New().String(),
		Name:    in.Name,
		Type:    in.Type,
		Balance: decimal.Zero,
	}
	if err := putOne(ctx, s, store.ColPaymentMethods, m.ID, m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Update edita nombre y tipo. El balance queda como está.
func (uc *PaymentMethodUseCase) Update(ctx context.Context, s *session.Session, id string, in dto.UpdatePaymentMethodRequest) (*entity.PaymentMethod, error) {
	if !access.Allowed(s.Role(), access.PermTransferFunds) {
		return nil, nil
	}
	m := s.State().PaymentMethodByID(id)
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Type != nil {
		if !validMethodType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		m.Type = *in.Type
	}
	if err := putOne(ctx, s, store.ColPaymentMethods, m.ID, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete borra una caja.
func (uc *PaymentMethodUseCase) Delete(ctx context.Context, s *session.Session, id string) error {
	if !access.Allowed(s.Role(), access.PermTransferFunds) {
		return nil
	}
	if s.State().PaymentMethodByID(id) == nil {
		return domain.ErrNotFound
	}
	return deleteOne(ctx, s, store.ColPaymentMethods, id)
}

func validMethodType(t string) bool {
	switch t {
	case entity.MethodTypeCash, entity.MethodTypeCard, entity.MethodTypeDigital, entity.MethodTypeOther:
		return true
	}
	return false
}
