package ports

import (
	"context"

	"github.com/jmorales/ventaspro-api/internal/domain/entity"
)

// Invoicer autoriza una factura electrónica para una venta. La implementación
// actual es un stub local (simula el CAE); una real llamaría al WS de AFIP.
type Invoicer interface {
	Authorize(ctx context.Context, sale *entity.Sale, profile entity.StoreProfile, customerDoc string) (*entity.InvoiceData, error)
}

// LLMService genera el análisis de negocio en texto libre a partir de un
// resumen agregado. Fire-and-forget: sin reintentos, la falla degrada a un
// mensaje estático.
type LLMService interface {
	BusinessAdvice(ctx context.Context, prompt string) (string, error)
}
