package usecase

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
)

// MethodTotal total vendido por medio de pago.
type MethodTotal struct {
	MethodName string          `json:"method_name"`
	Total      decimal.Decimal `json:"total"`
}

// Report resumen agregado del negocio para el tablero y para el prompt del
// análisis con IA.
type Report struct {
	From          time.Time          `json:"from"`
	To            time.Time          `json:"to"`
	SalesCount    int                `json:"sales_count"`
	Revenue       decimal.Decimal    `json:"revenue"`
	Profit        decimal.Decimal    `json:"profit"`
	ByMethod      []MethodTotal      `json:"by_method"`
	TopProducts   []ProductSales     `json:"top_products"`
	LowStock      []entity.Product   `json:"low_stock"`
	MethodBalance []entity.PaymentMethod `json:"method_balances"`
}

// ProductSales unidades vendidas por producto.
type ProductSales struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ReportUseCase arma resúmenes desde los snapshots en memoria de la sesión.
// No consulta el backend: trabaja sobre lo que las suscripciones ya trajeron.
type ReportUseCase struct{}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase() *ReportUseCase {
	return &ReportUseCase{}
}

// Build calcula el resumen del período [from, to).
func (uc *ReportUseCase) Build(s *session.Session, from, to time.Time) *Report {
	st := s.State()
	report := &Report{From: from, To: to}

	byMethod := make(map[string]decimal.Decimal)
	byProduct := make(map[string]*ProductSales)
	for _, sale := range st.Sales() {
		if sale.Timestamp.Before(from) || !sale.Timestamp.Before(to) {
			continue
		}
		report.SalesCount++
		report.Revenue = report.Revenue.Add(sale.TotalAmount)
		report.Profit = report.Profit.Add(sale.TotalProfit)
		for _, pay := range sale.Payments {
			byMethod[pay.MethodName] = byMethod[pay.MethodName].Add(pay.Amount)
		}
		for _, item := range sale.Items {
			ps := byProduct[item.Name]
			if ps == nil {
				ps = &ProductSales{Name: item.Name}
				byProduct[item.Name] = ps
			}
			ps.Quantity = ps.Quantity.Add(item.Quantity)
			ps.Revenue = ps.Revenue.Add(item.Subtotal)
		}
	}

	for name, total := range byMethod {
		report.ByMethod = append(report.ByMethod, MethodTotal{MethodName: name, Total: total})
	}
	for _, ps := range byProduct {
		report.TopProducts = append(report.TopProducts, *ps)
	}
	// Orden descendente por facturación; el tablero muestra los primeros.
	sort.Slice(report.TopProducts, func(i, j int) bool {
		return report.TopProducts[i].Revenue.GreaterThan(report.TopProducts[j].Revenue)
	})
	if len(report.TopProducts) > 10 {
		report.TopProducts = report.TopProducts[:10]
	}

	threshold := st.LowStockThreshold()
	for _, p := range st.Products() {
		if !p.IsVariablePrice && p.Stock <= threshold {
			report.LowStock = append(report.LowStock, p)
		}
	}
	report.MethodBalance = st.PaymentMethods()
	return report
}
