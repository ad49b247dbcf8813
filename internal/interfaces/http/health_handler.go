package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
)

// CollectionStatus reporta qué colecciones están resueltas (mongodb.Registry).
type CollectionStatus interface {
	Status() map[string]bool
}

// HealthHandler GET /api/health. Siempre 200: el estado de las colecciones va en el cuerpo.
type HealthHandler struct {
	service     string
	collections CollectionStatus
	now         func() time.Time
}

// NewHealthHandler construye el handler.
func NewHealthHandler(service string, collections CollectionStatus) *HealthHandler {
	return &HealthHandler{service: service, collections: collections, now: time.Now}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	collections := map[string]bool{}
	if h.collections != nil {
		collections = h.collections.Status()
	}
	return c.JSON(dto.HealthResponse{
		Status:      "ok",
		Service:     h.service,
		Timestamp:   h.now().UTC().Format(time.RFC3339),
		Collections: collections,
	})
}
