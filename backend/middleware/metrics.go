package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"langbridge/backend/metrics"
)

func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Route pattern, not the raw path, keeps label cardinality bounded.
		metrics.HTTPRequests.WithLabelValues(
			c.Method(),
			c.Route().Path,
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()
		metrics.HTTPDuration.Observe(time.Since(start).Seconds())

		return err
	}
}
