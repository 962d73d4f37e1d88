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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/ShopAssistant-api/internal/application/usecase"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
	infrapdf "github.com/jhoicas/ShopAssistant-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/ShopAssistant-api/internal/interfaces/http"
	"github.com/jhoicas/ShopAssistant-api/pkg/config"
	"github.com/jhoicas/ShopAssistant-api/pkg/logger"
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
		Version: cfg.App.Version,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("catalog_source", cfg.Catalog.Source).
		Str("agent_provider", cfg.Agent.Provider).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Catálogo: se carga una vez y queda inmutable durante la vida del proceso.
	records, closeSource, err := loadCatalog(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("carga del catálogo")
	}
	closeSource()
	snapshot, err := catalog.Build(*records)
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo inválido")
	}
	engine := catalog.NewEngine(snapshot)
	log.Info().
		Int("shops", snapshot.ShopCount()).
		Int("products", snapshot.ProductCount()).
		Msg("catálogo cargado")

	agent := newAgent(cfg)
	agentUC := usecase.NewAgentUseCase(agent, engine, usecase.AgentOptions{
		Timeout:        cfg.Agent.Timeout,
		MemoMaxEntries: cfg.Agent.MemoMaxEntries,
		Logger:         log.Component("agent"),
	})

	tryOnSvc, closeTryOn, err := newTryOn(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración del probador virtual")
	}
	defer closeTryOn()

	catalogUC := usecase.NewCatalogUseCase(engine)
	catalogPDFUC := usecase.NewCatalogPDFUseCase(engine, infrapdf.NewMarotoCatalogGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Shop Assistant API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	if cfg.HTTP.StaticDir != "" {
		app.Static("/static", cfg.HTTP.StaticDir)
	}

	deps := httpRouter.RouterDeps{
		ServiceName:  cfg.App.Name,
		Version:      cfg.App.Version,
		CatalogUC:    catalogUC,
		CatalogPDFUC: catalogPDFUC,
		AgentUC:      agentUC,
	}
	if tryOnSvc != nil {
		deps.TryOn = tryOnSvc
	}
	httpRouter.Router(app, deps)

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
