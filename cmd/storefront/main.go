package main

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"storefront/internal/authz"
	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		applog.Logger().Fatal().Err(err).Msg("config")
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			applog.Logger().Warn().Err(err).Str("file", cfg.LogFile).Msg("could not open log file")
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.SetOutput(out)
	applog.SetLevel(cfg.LogLevel)

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		applog.Logger().Fatal().Err(err).Str("dsn", cfg.DBDSN).Msg("open db")
	}
	defer db.Close()
	if cfg.SeedDemo {
		if err := repos.SeedDemo(db); err != nil {
			applog.Logger().Fatal().Err(err).Msg("seed demo catalog")
		}
	}

	policy := authz.Default()
	if cfg.PolicyFile != "" {
		if policy, err = authz.Load(cfg.PolicyFile); err != nil {
			applog.Logger().Fatal().Err(err).Str("file", cfg.PolicyFile).Msg("load policy")
		}
	}

	pub := events.New(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer pub.Close()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    1 << 20, // 1 MiB
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: out}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	handlers.Mount(app, handlers.NewDeps(db, cfg, pub), policy)

	if err := app.Listen(":" + cfg.Port); err != nil {
		applog.Logger().Error().Err(err).Msg("listen")
	}
}
