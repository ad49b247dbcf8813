package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

// Locals keys del logger de peticiones.
const (
	LocalRequestID = "request_id"
	LocalError     = "error"
)

// HeaderRequestID se respeta si el cliente lo envía; si no, se genera uno.
const HeaderRequestID = "X-Request-ID"

// RequestLogger registra método, ruta, status, latencia y request id.
// Las respuestas 5xx se registran en nivel error junto con el error original.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)

		chainErr := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if chainErr != nil {
			status = fiber.StatusInternalServerError
			if errors.As(chainErr, &fe) {
				status = fe.Code
			}
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
			if err, ok := c.Locals(LocalError).(error); ok {
				ev = ev.Err(err)
			} else if chainErr != nil {
				ev = ev.Err(chainErr)
			}
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición HTTP")

		return chainErr
	}
}

// GetRequestID devuelve el id asignado por RequestLogger.
func GetRequestID(c *fiber.Ctx) string { return localString(c, LocalRequestID) }
