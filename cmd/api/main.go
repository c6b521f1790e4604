package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/bootstrap"
	httpRouter "github.com/jhoicas/goldfolio-api/internal/interfaces/http"
	"github.com/jhoicas/goldfolio-api/pkg/config"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("session_store", cfg.Session.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()
	container, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer container.Close()

	app := httpRouter.NewServer(httpRouter.ServerConfig{
		AppName:        cfg.App.Name,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		SwaggerFile:    "./docs/swagger.json",
		HTTPMetrics:    container.Metrics.Middleware(),
		MetricsHandler: promhttp.HandlerFor(container.Registry, promhttp.HandlerOpts{}),
	}, container.RouterDeps(log))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
