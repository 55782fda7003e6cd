package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"jobtracker/internal/logger"
)

// Logger writes one structured line per request with request_id, method, path,
// status and latency in milliseconds, plus trace_id when a span is active.
// 5xx responses log at error level, 4xx at warn.
func Logger(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The global error handler has not written the response yet.
			status = statusFromError(err)
		}

		fields := []logger.Field{
			logger.String("request_id", RequestIDFrom(c)),
			logger.String("method", c.Method()),
			logger.String("path", c.Path()),
			logger.Int("status", status),
			logger.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		}
		if owner := OwnerIDFrom(c); owner != "" {
			fields = append(fields, logger.String("owner_id", owner))
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
			fields = append(fields, logger.String("trace_id", sc.TraceID().String()))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
		return err
	}
}

// LoggerWithWriter is Logger on a JSON encoder over w, with timestamps rendered in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logger.NewJSON(w, "info", loc))
}

func statusFromError(err error) int {
	if fe, ok := err.(*fiber.Error); ok {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
