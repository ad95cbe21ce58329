package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmorales/ventaspro-api/internal/application/ports"
	"github.com/jmorales/ventaspro-api/internal/application/session"
)

// aiFallbackAdvice se devuelve cuando el servicio de IA no está disponible.
const aiFallbackAdvice = "El análisis inteligente no está disponible en este momento. Revisá los totales del tablero e intentá de nuevo más tarde."

// AIUseCase arma el resumen de ventas y pide el análisis de negocio al LLM.
// Fire-and-forget: sin reintentos; cualquier falla degrada al texto estático.
type AIUseCase struct {
	llm     ports.LLMService
	reports *ReportUseCase
}

// NewAIUseCase construye el caso de uso. llm puede ser nil (sin API key).
func NewAIUseCase(llm ports.LLMService, reports *ReportUseCase) *AIUseCase {
	return &AIUseCase{llm: llm, reports: reports}
}

// BusinessInsights genera el consejo sobre los últimos 30 días.
func (uc *AIUseCase) BusinessInsights(ctx context.Context, s *session.Session) string {
	if uc.llm == nil {
		return aiFallbackAdvice
	}
	now := time.Now()
	report := uc.reports.Build(s, now.AddDate(0, 0, -30), now)

	var b strings.Builder
	fmt.Fprintf(&b, "Ventas de los últimos 30 días: %d operaciones, facturación %s, ganancia %s.\n",
		report.SalesCount, report.Revenue.StringFixed(2), report.Profit.StringFixed(2))
	if len(report.ByMethod) > 0 {
		b.WriteString("Por medio de pago:\n")
		for _, m := range report.ByMethod {
			fmt.Fprintf(&b, "- %s: %s\n", m.MethodName, m.Total.StringFixed(2))
		}
	}
	if len(report.TopProducts) > 0 {
		b.WriteString("Productos más vendidos:\n")
		for _, p := range report.TopProducts {
			fmt.Fprintf(&b, "- %s: %s unidades, %s\n", p.Name, p.Quantity.String(), p.Revenue.StringFixed(2))
		}
	}
	if len(report.LowStock) > 0 {
		fmt.Fprintf(&b, "Productos con stock bajo: %d.\n", len(report.LowStock))
	}

	// Timeout corto: el tablero no espera más que esto.
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	advice, err := uc.llm.BusinessAdvice(ctx, b.String())
	if err != nil {
		return aiFallbackAdvice
	}
	return advice
}
