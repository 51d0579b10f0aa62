package log

import (
	"io"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stdout)
)

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

func init() {
	zerolog.TimestampFieldName = "ts"
	zerolog.ErrorFieldName = "err"
}

// SetOutput redirects every subsequent log line to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w).Level(logger.GetLevel())
}

// SetLevel accepts zerolog level names; unknown names leave the level unchanged.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(lvl)
}

// Logger returns the process logger for events that are not tied to a request.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func write(ev *zerolog.Event, c *fiber.Ctx, action string, err error, fields map[string]any) {
	if c != nil {
		ev = ev.Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path())
		if status := c.Response().StatusCode(); status != 0 {
			ev = ev.Int("status", status)
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev = ev.Str("req_id", rid)
		}
		if uid, ok := c.Locals("user_id").(int64); ok && uid != 0 {
			ev = ev.Int64("user_id", uid)
		}
	}
	if action != "" {
		ev = ev.Str("action", action)
	}
	if err != nil {
		ev = ev.Err(err)
	}
	if len(fields) > 0 {
		ev = ev.Interface("fields", fields)
	}
	ev.Send()
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(Logger().Info(), c, action, nil, fields)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(Logger().WithLevel(zerolog.NoLevel).Str("level", "audit"), c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(Logger().Warn(), c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(Logger().Error(), c, action, err, fields)
}
