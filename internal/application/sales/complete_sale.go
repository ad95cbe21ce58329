package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/ports"
	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/domain"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	domsale "github.com/jmorales/ventaspro-api/internal/domain/sale"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

// paymentEpsilon tolera el redondeo de punto flotante de la UI: la suma de
// pagos puede quedar hasta 0.01 por debajo del total.
var paymentEpsilon = decimal.NewFromFloat(0.01)

// CompleteSaleUseCase completa una venta: arma el snapshot de líneas, valida
// el pago, descuenta stock, acredita cajas (o cuenta corriente) y persiste la
// venta — todo como una unidad atómica contra el backend de la sesión.
type CompleteSaleUseCase struct {
	invoicer ports.Invoicer // opcional
	log      *logger.Logger
}

// NewCompleteSaleUseCase construye el caso de uso. invoicer puede ser nil.
func NewCompleteSaleUseCase(invoicer ports.Invoicer, log *logger.Logger) *CompleteSaleUseCase {
	return &CompleteSaleUseCase{invoicer: invoicer, log: log}
}

// Execute completa la venta contra la sesión dada. Si el rol no tiene
// permiso la operación retorna sin efecto. Si la validación de pago falla no
// se escribe nada.
func (uc *CompleteSaleUseCase) Execute(ctx context.Context, s *session.Session, in dto.CompleteSaleRequest) (*entity.Sale, error) {
	if !access.Allowed(s.Role(), access.PermCompleteSale) {
		return nil, nil
	}
	if len(in.Items) == 0 || len(in.Payments) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var sale *entity.Sale
	err := s.Run(func() error {
		var err error
		sale, err = uc.complete(ctx, s, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (uc *CompleteSaleUseCase) complete(ctx context.Context, s *session.Session, in dto.CompleteSaleRequest) (*entity.Sale, error) {
	st := s.State()

	// 1) Armar el carrito desde el catálogo actual (snapshot desnormalizado).
	cart := &domsale.Cart{}
	for _, item := range in.Items {
		p := st.ProductByID(item.ProductID)
		if p == nil {
			return nil, domain.ErrNotFound
		}
		if p.IsVariablePrice {
			if item.ManualPrice == nil || !item.ManualPrice.IsPositive() {
				return nil, domain.ErrInvalidInput
			}
			cart.AddWeighed(*p, *item.ManualPrice)
		} else {
			qty := item.Quantity
			if qty.IsZero() {
				qty = decimal.NewFromInt(1)
			}
			// Las líneas de precio fijo descuentan stock en unidades enteras;
			// una cantidad fraccionaria acá es un error del cliente.
			if !qty.IsPositive() || !qty.IsInteger() {
				return nil, domain.ErrInvalidInput
			}
			cart.AddFixedQuantity(*p, qty)
		}
	}
	totalAmount, _, totalProfit := cart.Totals()

	// 2) Validar suficiencia del pago antes de cualquier escritura.
	var paid decimal.Decimal
	for _, pay := range in.Payments {
		paid = paid.Add(pay.Amount)
	}
	if paid.LessThan(totalAmount.Sub(paymentEpsilon)) {
		return nil, domain.ErrInsufficientPayment
	}

	// 3) Resolver pagos: el principal es el de mayor monto (empate: primero
	// en el orden de entrada). Con más de un pago el nombre registrado es
	// "Mixto/Multiple".
	details := make([]entity.PaymentDetail, 0, len(in.Payments))
	creditTotal := decimal.Zero
	methodCredits := make(map[string]decimal.Decimal)
	for _, pay := range in.Payments {
		if pay.MethodID == "" {
			// Cuenta corriente: se anota en el saldo del cliente.
			if in.CustomerID == "" {
				return nil, domain.ErrInvalidInput
			}
			creditTotal = creditTotal.Add(pay.Amount)
			details = append(details, entity.PaymentDetail{
				MethodName: entity.CreditMethodName,
				Amount:     pay.Amount,
			})
			continue
		}
		m := st.PaymentMethodByID(pay.MethodID)
		if m == nil {
			return nil, domain.ErrPaymentMethodMissing
		}
		methodCredits[m.ID] = methodCredits[m.ID].Add(pay.Amount)
		details = append(details, entity.PaymentDetail{
			MethodID:   m.ID,
			MethodName: m.Name,
			Amount:     pay.Amount,
		})
	}
	primary := details[0]
	for _, d := range details[1:] {
		if d.Amount.GreaterThan(primary.Amount) {
			primary = d
		}
	}
	methodName := primary.MethodName
	if len(details) > 1 {
		methodName = entity.MixedMethodName
	}

	// 4) Construir la venta (inmutable una vez persistida).
	items := make([]entity.SaleItem, 0, len(cart.Lines()))
	for _, l := range cart.Lines() {
		items = append(items, entity.SaleItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			UnitCost:  l.UnitCost,
			Subtotal:  l.Subtotal(),
		})
	}
	sale := &entity.Sale{
		ID:                uuid.New().String(),
		Timestamp:         time.Now(),
		Items:             items,
		TotalAmount:       totalAmount,
		TotalProfit:       totalProfit,
		PaymentMethodName: methodName,
		Payments:          details,
		CustomerID:        in.CustomerID,
	}

	// 5) Factura electrónica (stub): la falla degrada, nunca bloquea la venta.
	if in.WithInvoice && uc.invoicer != nil {
		invoice, err := uc.invoicer.Authorize(ctx, sale, st.Profile(), in.CustomerDoc)
		if err != nil {
			uc.log.Warn().Err(err).Msg("autorización de factura falló, la venta sigue sin factura")
		} else {
			sale.Invoice = invoice
		}
	}

	// 6) Una sola unidad atómica: alta de venta + stock + saldos.
	ws := &store.WriteSet{}
	saleDoc, err := store.NewDocument(sale.ID, sale)
	if err != nil {
		return nil, err
	}
	ws.Put(store.ColSales, saleDoc)

	for productID, qty := range cart.StockByProduct() {
		p := st.ProductByID(productID)
		p.Stock -= qty.IntPart()
		doc, err := store.NewDocument(p.ID, p)
		if err != nil {
			return nil, err
		}
		ws.Put(store.ColProducts, doc)
	}
	for methodID, amount := range methodCredits {
		m := st.PaymentMethodByID(methodID)
		m.Balance = m.Balance.Add(amount)
		doc, err := store.NewDocument(m.ID, m)
		if err != nil {
			return nil, err
		}
		ws.Put(store.ColPaymentMethods, doc)
	}
	if creditTotal.IsPositive() {
		c := st.CustomerByID(in.CustomerID)
		if c == nil {
			return nil, domain.ErrNotFound
		}
		c.Balance = c.Balance.Add(creditTotal)
		doc, err := store.NewDocument(c.ID, c)
		if err != nil {
			return nil, err
		}
		ws.Put(store.ColCustomers, doc)
	}

	if err := s.ApplyAndRefresh(ctx, ws); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("method", methodName).
		Str("total", totalAmount.StringFixed(2)).
		Msg("venta completada")
	return sale, nil
}
