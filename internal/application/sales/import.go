package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/domain"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

// ImportProductsUseCase importa el catálogo en masa. No es atómico entre
// lotes (a propósito: cada lote respeta el tope del backend); si un lote del
// medio falla, los anteriores quedan confirmados y se informa un único error
// agregado.
type ImportProductsUseCase struct {
	log *logger.Logger
}

// NewImportProductsUseCase construye el caso de uso.
func NewImportProductsUseCase(log *logger.Logger) *ImportProductsUseCase {
	return &ImportProductsUseCase{log: log}
}

// Execute importa los productos. Rol sin permiso: sin efecto.
func (uc *ImportProductsUseCase) Execute(ctx context.Context, s *session.Session, rows []dto.ImportProductRequest) (*dto.ImportResult, error) {
	if !access.Allowed(s.Role(), access.PermManageCatalog) {
		return nil, nil
	}
	if len(rows) == 0 {
		return nil, domain.ErrInvalidInput
	}

	ws := &store.WriteSet{}
	for _, row := range rows {
		p := entity.Product{
			ID:              uuid.New().String(),
			Name:            row.Name,
			CostPrice:       row.CostPrice,
			SellingPrice:    row.SellingPrice,
			Stock:           row.Stock,
			Category:        row.Category,
			Barcode:         row.Barcode,
			IsVariablePrice: row.IsVariablePrice,
		}
		doc, err := store.NewDocument(p.ID, p)
		if err != nil {
			return nil, err
		}
		ws.Put(store.ColProducts, doc)
	}

	chunks := ws.Chunks(store.BatchLimit)
	var result dto.ImportResult
	err := s.Run(func() error {
		for i, chunk := range chunks {
			if err := s.ApplyAndRefresh(ctx, chunk); err != nil {
				// Los lotes ya confirmados quedan; el caller no tiene forma
				// automática de saber qué filas entraron.
				return fmt.Errorf("import falló en el lote %d de %d (los %d lotes previos quedaron aplicados): %w",
					i+1, len(chunks), i, err)
			}
			result.Batches++
			result.Imported += chunk.Len()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("products", result.Imported).Int("batches", result.Batches).Msg("catálogo importado")
	return &result, nil
}
