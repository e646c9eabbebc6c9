package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ofertas-pro/internal/infrastructure/metrics"
)

// MetricsMiddleware registra conteo y latencia por ruta. Usa c.Route().Path
// (la plantilla, no la URL concreta) para no explotar la cardinalidad.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		method := c.Method()
		metrics.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(c.Response().StatusCode())).Inc()
		metrics.HTTPDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}
