package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/CashCount-api/pkg/logger"
)

const localLogger = "logger"

// RequestID asigna un X-Request-ID (uuid v4) si el cliente no envió uno.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})
}

func requestID(c *fiber.Ctx) string {
	s, _ := c.Locals("requestid").(string)
	return s
}

// AccessLog registra un evento por petición y deja el logger disponible para los handlers.
func AccessLog(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(localLogger, l)
		err := c.Next()
		if err != nil {
			// el ErrorHandler de la app escribe la respuesta final
			_ = c.App().Config().ErrorHandler(c, err)
		}
		status := c.Response().StatusCode()
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Str("user", GetUserID(c)).
			Msg("request")
		return nil
	}
}
