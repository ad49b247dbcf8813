package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-analytics-api/internal/application/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
)

// AnalyticsHandler maneja los endpoints /api/analytics/*. Todos aceptan ?start= y ?end=
// (YYYY-MM-DD, inclusivos).
type AnalyticsHandler struct {
	uc *analytics.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// servePeriod parsea el período, ejecuta fn y serializa el resultado.
func servePeriod[T any](c *fiber.Ctx, fn func(context.Context, dto.PeriodRequest) (T, error)) error {
	var q dto.PeriodRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid query parameters", Code: "INVALID_PARAMS"})
	}
	out, err := fn(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// serveRanking igual que servePeriod más ?limit=.
func serveRanking[T any](c *fiber.Ctx, fn func(context.Context, dto.PeriodRequest, dto.LimitRequest) (T, error)) error {
	var q dto.PeriodRequest
	var lim dto.LimitRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid query parameters", Code: "INVALID_PARAMS"})
	}
	if err := c.QueryParser(&lim); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid query parameters", Code: "INVALID_PARAMS"})
	}
	out, err := fn(c.UserContext(), q, lim)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      KPIs globales de ventas
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end    query  string  false  "Fin del período (YYYY-MM-DD, inclusivo)"
// @Success      200  {object}  dto.SummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	return servePeriod(c, h.uc.Summary)
}

// ProfitByTeam godoc
// @Summary      Profit por equipo
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TeamPerformanceDTO
// @Router       /api/analytics/profit-by-team [get]
func (h *AnalyticsHandler) ProfitByTeam(c *fiber.Ctx) error {
	return servePeriod(c, h.uc.ProfitByTeam)
}

// ProfitByAgent godoc
// @Summary      Profit por agente
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AgentPerformanceDTO
// @Router       /api/analytics/profit-by-agent [get]
func (h *AnalyticsHandler) ProfitByAgent(c *fiber.Ctx) error {
	return servePeriod(c, h.uc.ProfitByAgent)
}

// ProfitByLead godoc
// @Summary      Profit por fuente de lead
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LeadSourceDTO
// @Router       /api/analytics/profit-by-lead [get]
func (h *AnalyticsHandler) ProfitByLead(c *fiber.Ctx) error {
	return servePeriod(c, h.uc.ProfitByLead)
}

// ProfitByOutreach godoc
// @Summary      Profit por método de outreach (nombre anterior de profit-by-lead)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OutreachMethodDTO
// @Router       /api/analytics/profit-by-outreach [get]
func (h *AnalyticsHandler) ProfitByOutreach(c *fiber.Ctx) error {
	return servePeriod(c, h.uc.ProfitByOutreach)
}

// TopPerformers godoc
// @Summary      Ranking de agentes
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máx. agentes (default 10, max 100)"
// @Success      200  {array}  dto.AgentPerformanceDTO
// @Router       /api/analytics/top-performers [get]
func (h *AnalyticsHandler) TopPerformers(c *fiber.Ctx) error {
	return serveRanking(c, h.uc.TopPerformers)
}

// Efficiency godoc
// @Summary      Productividad del equipo comercial
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EfficiencyDTO
// @Router       /api/analytics/efficiency [get]
func (h *AnalyticsHandler) Efficiency(c *fiber.Ctx) error {
	return servePeriod(c, h.uc.Efficiency)
}

// Trends godoc
// @Summary      Serie mensual
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TrendDTO
// @Router       /api/analytics/trends [get]
func (h *AnalyticsHandler) Trends(c *fiber.Ctx) error {
	return servePeriod(c, h.uc.Trends)
}

// PerformanceComparison godoc
// @Summary      Mejores vs peores agentes
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Agentes por lista (default 5, max 50)"
// @Success      200  {object}  dto.PerformanceComparisonDTO
// @Router       /api/analytics/performance-comparison [get]
func (h *AnalyticsHandler) PerformanceComparison(c *fiber.Ctx) error {
	return serveRanking(c, h.uc.PerformanceComparison)
}

// LeadROI godoc
// @Summary      Porcentaje cobrado por fuente de lead
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LeadROIDTO
// @Router       /api/analytics/lead-roi [get]
func (h *AnalyticsHandler) LeadROI(c *fiber.Ctx) error {
	return servePeriod(c, h.uc.LeadROI)
}

// TeamLeadMatrix godoc
// @Summary      Matriz equipo × fuente de lead
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TeamLeadCellDTO
// @Router       /api/analytics/team-lead-matrix [get]
func (h *AnalyticsHandler) TeamLeadMatrix(c *fiber.Ctx) error {
	return servePeriod(c, h.uc.TeamLeadMatrix)
}

// ProfitDistribution godoc
// @Summary      Distribución del profit por job
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfitDistributionDTO
// @Router       /api/analytics/profit-distribution [get]
func (h *AnalyticsHandler) ProfitDistribution(c *fiber.Ctx) error {
	return servePeriod(c, h.uc.ProfitDistribution)
}

// AgentSpecialization godoc
// @Summary      Mejor fuente de lead por agente
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AgentSpecializationDTO
// @Router       /api/analytics/agent-specialization [get]
func (h *AnalyticsHandler) AgentSpecialization(c *fiber.Ctx) error {
	return servePeriod(c, h.uc.AgentSpecialization)
}

// PaymentCollection godoc
// @Summary      Ranking de cobranza
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PaymentCollectionDTO
// @Router       /api/analytics/payment-collection [get]
func (h *AnalyticsHandler) PaymentCollection(c *fiber.Ctx) error {
	return servePeriod(c, h.uc.PaymentCollection)
}
