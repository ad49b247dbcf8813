package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-analytics-api/internal/application/analytics"
)

// DataHandler expone las colecciones normalizadas sin agregar.
type DataHandler struct {
	uc *analytics.AnalyticsUseCase
}

// NewDataHandler construye el handler.
func NewDataHandler(uc *analytics.AnalyticsUseCase) *DataHandler {
	return &DataHandler{uc: uc}
}

// Jobs godoc
// @Summary      Listar jobs
// @Tags         data
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.JobDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/jobs [get]
func (h *DataHandler) Jobs(c *fiber.Ctx) error {
	out, err := h.uc.ListJobs(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Roles godoc
// @Summary      Listar roles agente → equipo
// @Tags         data
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.RoleDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/roles [get]
func (h *DataHandler) Roles(c *fiber.Ctx) error {
	out, err := h.uc.ListRoles(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
