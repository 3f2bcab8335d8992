package middleware

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger logs each HTTP request as one JSON line on stdout.
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout, time.Local)
}

// LoggerWithWriter is Logger writing to w, with timestamps rendered in loc.
//
// Fields:
// - ts (RFC3339 with milliseconds)
// - level ("error" for 5xx, "warn" for 4xx, "info" otherwise)
// - request_id (taken from context locals set by RequestID middleware)
// - method, path (no query string), status
// - latency (in milliseconds, as float)
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.UTC
	}
	var mu sync.Mutex
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		level := "info"
		switch {
		case status >= fiber.StatusInternalServerError:
			level = "error"
		case status >= fiber.StatusBadRequest:
			level = "warn"
		}
		rid, _ := c.Locals(RequestIDLocalKey).(string)

		mu.Lock()
		_ = enc.Encode(map[string]any{
			"ts":         start.In(loc).Format("2006-01-02T15:04:05.000Z07:00"),
			"level":      level,
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		})
		mu.Unlock()

		return err
	}
}
