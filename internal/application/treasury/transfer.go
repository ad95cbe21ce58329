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

// TransferUseCase mueve fondos entre dos cajas: alta del Transfer + débito de
// origen + crédito de destino como unidad atómica. El neto entre cajas es
// cero siempre.
type TransferUseCase struct {
	log *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(log *logger.Logger) *TransferUseCase {
	return &TransferUseCase{log: log}
}

// Execute realiza la transferencia. Con saldo insuficiente en el origen no se
// escribe nada. Rol sin permiso: sin efecto.
func (uc *TransferUseCase) Execute(ctx context.Context, s *session.Session, in dto.TransferRequest) error {
	if !access.Allowed(s.Role(), access.PermTransferFunds) {
		return nil
	}
	if in.FromMethodID == "" || in.ToMethodID == "" || !in.Amount.IsPositive() {
		return domain.ErrInvalidInput
	}
	// Origen y destino iguales: las dos escrituras caerían sobre el mismo
	// documento y la última ganaría, dejando la caja con saldo inflado.
	if in.FromMethodID == in.ToMethodID {
		return domain.ErrInvalidInput
	}

	return s.Run(func() error {
		st := s.State()
		from := st.PaymentMethodByID(in.FromMethodID)
		to := st.PaymentMethodByID(in.ToMethodID)
		if from == nil || to == nil {
			return domain.ErrPaymentMethodMissing
		}
		if from.Balance.LessThan(in.Amount) {
			return domain.ErrInsufficientFunds
		}

		transfer := entity.Transfer{
			ID:           uuid.New().String(),
			Timestamp:    time.Now(),
			FromMethodID: from.ID,
			ToMethodID:   to.ID,
			Amount:       in.Amount,
			Note:         in.Note,
		}
		from.Balance = from.Balance.Sub(in.Amount)
		to.Balance = to.Balance.Add(in.Amount)

		ws := &store.WriteSet{}
		transferDoc, err := store.NewDocument(transfer.ID, transfer)
		if err != nil {
			return err
		}
		ws.Put(store.ColTransfers, transferDoc)
		fromDoc, err := store.NewDocument(from.ID, from)
		if err != nil {
			return err
		}
		ws.Put(store.ColPaymentMethods, fromDoc)
		toDoc, err := store.NewDocument(to.ID, to)
		if err != nil {
			return err
		}
		ws.Put(store.ColPaymentMethods, toDoc)

		if err := s.ApplyAndRefresh(ctx, ws); err != nil {
			return err
		}
		uc.log.Info().
			Str("from", from.Name).
			Str("to", to.Name).
			Str("amount", in.Amount.StringFixed(2)).
			Msg("transferencia entre cajas")
		return nil
	})
}
