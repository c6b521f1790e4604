package http

import (
	nethttp "net/http"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
)

// ServerConfig opciones del servidor HTTP. Todo lo opcional se omite si viene vacío.
type ServerConfig struct {
	AppName        string
	AllowedOrigins string          // lista separada por comas; "" = sin CORS
	SwaggerFile    string          // ej. ./docs/swagger.json
	HTTPMetrics    fiber.Handler   // middleware de métricas por ruta
	MetricsHandler nethttp.Handler // se expone en /metrics
}

// NewServer arma la app Fiber con middlewares, health, docs, métricas y las rutas de la API.
func NewServer(cfg ServerConfig, deps RouterDeps) *fiber.App {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
		deps.Log = log
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log.Named("http")))
	if cfg.AllowedOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}
	if cfg.HTTPMetrics != nil {
		app.Use(cfg.HTTPMetrics)
	}

	// Swagger UI: http://localhost:<port>/docs (el middleware exige que el archivo exista)
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Goldfolio API",
			}))
		} else {
			log.Warn().Str("file", cfg.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.AppName})
	})
	if cfg.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.MetricsHandler))
	}

	Router(app, deps)
	return app
}
