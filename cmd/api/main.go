package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/ewm-stock-api/docs"
	"github.com/jhoicas/ewm-stock-api/internal/application/stock"
	"github.com/jhoicas/ewm-stock-api/internal/domain/repository"
	"github.com/jhoicas/ewm-stock-api/internal/infrastructure/destination"
	"github.com/jhoicas/ewm-stock-api/internal/infrastructure/ewm"
	"github.com/jhoicas/ewm-stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ewm-stock-api/internal/interfaces/http"
	"github.com/jhoicas/ewm-stock-api/pkg/config"
	"github.com/jhoicas/ewm-stock-api/pkg/logger"
)

// @title        EWM Stock API
// @version      1.0
// @description  Lectura OData v4 del stock físico de SAP EWM filtrada por los tipos de stock autorizados del usuario.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in   header
// @name Authorization
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

	if !cfg.Auth.EnforceStockTypes {
		log.Warn().Msg("AUTH_ENFORCE_STOCK_TYPES=false: modo público, la lectura de stock no se restringe por tipo")
	}
	if cfg.JWT.Secret == "" && cfg.Auth.EnforceStockTypes {
		log.Fatal().Msg("JWT_SECRET requerido cuando la autorización por tipo de stock está activa")
	}

	destConfigs, err := destination.FromSettings(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de destinos")
	}
	resolver, err := destination.NewResolver(destConfigs, cfg.EWM.Timeout())
	if err != nil {
		log.Fatal().Err(err).Msg("construir destinos")
	}
	if dest, _ := resolver.Resolve(context.Background(), cfg.EWM.Destination); dest == nil {
		// No es fatal: cada lectura responderá UPSTREAM_UNAVAILABLE hasta que se configure.
		log.Warn().Str("destination", cfg.EWM.Destination).Strs("configured", resolver.Names()).
			Msg("destino EWM no configurado")
	}

	gateway := ewm.NewStockGateway(resolver, ewm.NewHTTPTransport(cfg.EWM.Timeout()), ewm.GatewayConfig{
		Destination: cfg.EWM.Destination,
		APIPath:     cfg.EWM.APIPath,
	}, log.Component("ewm"))

	readStockUC := stock.NewReadStockUseCase(gateway, stock.Config{
		EnforceStockTypes:  cfg.Auth.EnforceStockTypes,
		StockTypeAttribute: cfg.Auth.StockTypeAttribute,
		DefaultLimit:       cfg.EWM.DefaultTop,
		MaxLimit:           cfg.EWM.MaxTop,
	}, log.Component("stock"))

	// Fuente de concesiones en PostgreSQL solo si se pide explícitamente.
	var grants repository.StockTypeGrantRepository
	if cfg.Auth.StockTypeSource == config.StockTypeSourcePostgres {
		pool, err := postgres.NewPool(context.Background(), cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		grants = postgres.NewStockTypeGrantRepository(pool)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.EWM.Timeout() + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EWM Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockReader: readStockUC,
		Auth: httpRouter.AuthConfig{
			JWTSecret:          cfg.JWT.Secret,
			Optional:           !cfg.Auth.EnforceStockTypes,
			StockTypeAttribute: cfg.Auth.StockTypeAttribute,
			Grants:             grants,
			Log:                log.Component("auth"),
		},
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
