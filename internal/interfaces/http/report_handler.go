package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-analytics-api/internal/application/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
)

// ReportHandler exporta el dashboard en PDF.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// DashboardPDF godoc
// @Summary      Exportar el dashboard en PDF
// @Description  Resumen, equipos, top 10 agentes y ROI por fuente. Solo admin y manager.
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        start  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/report.pdf [get]
func (h *ReportHandler) DashboardPDF(c *fiber.Ctx) error {
	var q dto.PeriodRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid query parameters", Code: "INVALID_PARAMS"})
	}
	doc, err := h.uc.Render(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("sales-report-%s.pdf", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(doc)
}
