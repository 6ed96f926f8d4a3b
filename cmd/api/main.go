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

	"github.com/jhoicas/catalogo-servicios/internal/application/admin"
	"github.com/jhoicas/catalogo-servicios/internal/application/search"
	"github.com/jhoicas/catalogo-servicios/internal/application/usecase"
	"github.com/jhoicas/catalogo-servicios/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/catalogo-servicios/internal/infrastructure/pdf"
	"github.com/jhoicas/catalogo-servicios/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/catalogo-servicios/internal/interfaces/http"
	"github.com/jhoicas/catalogo-servicios/pkg/config"
	"github.com/jhoicas/catalogo-servicios/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	catalogUC := usecase.NewCatalogUseCase(postgres.NewCatalogRepos(pool), postgres.NewTxRunner(pool))

	policy := search.IncludeOnFault
	if cfg.Admin.FaultPolicy == "exclude" {
		policy = search.ExcludeOnFault
	}
	engine := search.NewEngine(log.Component("search"), search.WithFaultPolicy(policy))

	orchestrator := admin.NewOrchestrator(catalogUC, log.Component("admin"),
		admin.WithRecorder(metrics.Recorder{}),
		admin.WithTimeout(cfg.Admin.OperationTimeout),
	)
	sessions := admin.NewSessionStore(cfg.Admin.SessionTTL, log.Component("sessions"))

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go sessions.RunJanitor(janitorCtx, cfg.Admin.JanitorInterval)

	// PDF: lista de precios imprimible
	pdfGenerator := infrapdf.NewPriceListGenerator(cfg.Catalog.PublicURL)
	storefrontUC := usecase.NewStorefrontUseCase(catalogUC, engine, pdfGenerator,
		cfg.Catalog.PriceListTitle, cfg.Catalog.Currency)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(metrics.Handler())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); cfg.HTTP.SwaggerFile != "" && err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Catálogo de servicios API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", httpRouter.HealthHandler(cfg.App.Name, pool))
	app.Get("/metrics", metrics.Exposer())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Storefront:   storefrontUC,
		Orchestrator: orchestrator,
		Sessions:     sessions,
		Engine:       engine,
		Log:          log.Component("http"),
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
	stopJanitor()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
