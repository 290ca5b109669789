package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	appanalytics "github.com/jhoicas/pos-analytics/internal/application/analytics"
	appexport "github.com/jhoicas/pos-analytics/internal/application/export"
	"github.com/jhoicas/pos-analytics/internal/application/inventory"
	"github.com/jhoicas/pos-analytics/internal/application/usecase"
	"github.com/jhoicas/pos-analytics/internal/infrastructure/cache"
	infraexport "github.com/jhoicas/pos-analytics/internal/infrastructure/export"
	"github.com/jhoicas/pos-analytics/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-analytics/internal/interfaces/http"
	"github.com/jhoicas/pos-analytics/pkg/config"
	"github.com/jhoicas/pos-analytics/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	reportCache, closeCache, err := cache.NewReportCache(ctx, cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer func() {
		if err := closeCache(); err != nil {
			log.Warn().Err(err).Msg("cerrar caché")
		}
	}()
	log.Info().Bool("enabled", cfg.Cache.Enabled).Int("ttl_seconds", cfg.Cache.TTLSeconds).Msg("caché de reportes")

	loc, err := cfg.Analytics.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}
	settings := usecase.Settings{
		DefaultWindowDays: cfg.Analytics.DefaultWindowDays,
		DefaultTopN:       cfg.Analytics.DefaultTopN,
		MaxTopN:           cfg.Analytics.MaxTopN,
		RetentionMonths:   cfg.Analytics.RetentionMonths,
		Location:          loc,
	}

	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo, reportCache, settings)
	forecastUC := inventory.NewForecastUseCase(analyticsRepo, reportCache, settings)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, reportCache, settings)
	exportUC := appexport.NewExportUseCase(analyticsUC, forecastUC, settings,
		infraexport.NewCSVWriter(),
		infraexport.NewXLSXWriter(),
		infraexport.NewPDFWriter(cfg.App.Name),
	)

	app := httpRouter.NewServer(httpRouter.ServerConfig{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		SwaggerPath:  cfg.HTTP.SwaggerPath,
	}, httpRouter.RouterDeps{
		AnalyticsUC: analyticsUC,
		ForecastUC:  forecastUC,
		DashboardUC: dashboardUC,
		ExportUC:    exportUC,
		Logger:      log,
		JWTSecret:   cfg.JWT.Secret,
		ExportRoles: cfg.JWT.ExportRoles,
	})

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
