package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ServerConfig opciones de la aplicación Fiber.
type ServerConfig struct {
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	SwaggerPath  string // vacío o inexistente = sin /docs
}

// NewServer arma la aplicación: recover, log por petición, /health, Swagger UI y rutas /api.
func NewServer(cfg ServerConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.SwaggerPath != "" {
		if _, err := os.Stat(cfg.SwaggerPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerPath,
				Path:     "docs",
				Title:    "POS Analytics API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.AppName})
	})

	Router(app, deps)
	return app
}
