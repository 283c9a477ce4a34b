package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLog logs one line per request: warn for 5xx, debug otherwise.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req, res := c.Request(), c.Response()
			attrs := []any{
				"method", req.Method,
				"path", c.Path(),
				"status", res.Status,
				"ms", time.Since(start).Milliseconds(),
			}
			if id := res.Header().Get(echo.HeaderXRequestID); id != "" {
				attrs = append(attrs, "request_id", id)
			}
			if res.Status >= 500 {
				log.WarnContext(req.Context(), "request", attrs...)
			} else {
				log.DebugContext(req.Context(), "request", attrs...)
			}
			return nil
		}
	}
}
