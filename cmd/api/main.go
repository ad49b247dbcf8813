package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/sales-analytics-api/internal/application/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/application/auth"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/memory"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/mongodb"
	infrapdf "github.com/jhoicas/sales-analytics-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/sales-analytics-api/internal/interfaces/http"
	"github.com/jhoicas/sales-analytics-api/pkg/config"
	"github.com/jhoicas/sales-analytics-api/pkg/logger"
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

	ctx, stopDiscovery := context.WithCancel(context.Background())
	defer stopDiscovery()

	client, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("desconexión de MongoDB")
		}
	}()

	// Las colecciones pueden no existir aún (seed pendiente): la API arranca igual
	// y responde 503 hasta que el registro las encuentre.
	registry := mongodb.NewRegistry(client, cfg.Mongo, log)
	go registry.RunDiscovery(ctx, cfg.Mongo.DiscoveryRetry())

	jobRepo := mongodb.NewJobRepository(registry)
	roleRepo := mongodb.NewRoleRepository(registry)

	userRepo, err := memory.NewUserRepository(cfg.Auth.Credentials, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("usuarios demo")
	}
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	analyticsUC := analytics.NewAnalyticsUseCase(jobRepo, roleRepo)

	// PDF: exportación del dashboard
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := analytics.NewReportUseCase(jobRepo, roleRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders: "Content-Disposition, X-Request-ID",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.Swagger.FilePath != "" {
		if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.Swagger.FilePath,
				Path:     "docs",
				Title:    "Sales Analytics API",
			}))
		} else {
			log.Warn().Str("file", cfg.Swagger.FilePath).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		AnalyticsUC:    analyticsUC,
		ReportUC:       reportUC,
		Collections:    registry,
		ServiceName:    cfg.App.Name,
		JWTSecret:      cfg.JWT.Secret,
		RequestTimeout: cfg.HTTP.RequestTimeout(),
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopDiscovery()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
