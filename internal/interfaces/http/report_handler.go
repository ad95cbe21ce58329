package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/usecase"
)

// ReportHandler maneja el tablero de reportes y el análisis con IA.
type ReportHandler struct {
	reportUC *usecase.ReportUseCase
	aiUC     *usecase.AIUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reportUC *usecase.ReportUseCase, aiUC *usecase.AIUseCase) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, aiUC: aiUC}
}

// Build godoc
// @Summary      Resumen del negocio para un período (default: últimos 30 días)
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC3339)"
// @Param        to    query  string  false  "Hasta (RFC3339, exclusivo)"
// @Success      200   {object}  usecase.Report
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Build(c *fiber.Ctx) error {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if q := c.Query("from"); q != "" {
		t, err := time.Parse(time.RFC3339, q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		from = t
	}
	if q := c.Query("to"); q != "" {
		t, err := time.Parse(time.RFC3339, q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		to = t
	}
	return c.JSON(h.reportUC.Build(Sess(c), from, to))
}

// Insights godoc
// @Summary      Análisis de negocio con IA sobre los últimos 30 días
// @Tags         reports
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/reports/insights [get]
func (h *ReportHandler) Insights(c *fiber.Ctx) error {
	advice := h.aiUC.BusinessInsights(c.Context(), Sess(c))
	return c.JSON(fiber.Map{"advice": advice})
}
