package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/domain"
)

// respondError traduce errores de aplicación a HTTP:
//   - colección no resuelta      → 503 "<nombre> collection not found"
//   - entrada inválida            → 400
//   - deadline de la petición     → 408
//   - cualquier otro              → 500 con el mensaje tal cual
func respondError(c *fiber.Ctx, err error) error {
	var collErr *domain.CollectionError
	switch {
	case errors.As(err, &collErr):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: collErr.Error(), Code: "COLLECTION_UNAVAILABLE"})
	case errors.Is(err, domain.ErrCollectionUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: err.Error(), Code: "COLLECTION_UNAVAILABLE"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error(), Code: "BAD_REQUEST"})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{Error: "request timeout", Code: "TIMEOUT"})
	default:
		c.Locals(LocalError, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error(), Code: "INTERNAL"})
	}
}
