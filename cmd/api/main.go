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
	"github.com/licitapro/licitaciones-api/internal/application/auth"
	"github.com/licitapro/licitaciones-api/internal/application/billing"
	"github.com/licitapro/licitaciones-api/internal/application/entitlement"
	"github.com/licitapro/licitaciones-api/internal/application/permission"
	"github.com/licitapro/licitaciones-api/internal/application/usecase"
	"github.com/licitapro/licitaciones-api/internal/infrastructure/postgres"
	httpRouter "github.com/licitapro/licitaciones-api/internal/interfaces/http"
	"github.com/licitapro/licitaciones-api/pkg/config"
	"github.com/licitapro/licitaciones-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	moduleRepo := postgres.NewModuleRepository(pool)
	entitlementRepo := postgres.NewEntitlementRepository(pool)
	pricingRepo := postgres.NewPricingRepository(pool)
	tenderRepo := postgres.NewTenderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor de entitlements: catálogo + store transaccional + facturación + permisos
	catalog := entitlement.NewCatalog(moduleRepo)
	store := entitlement.NewStore(txRunner, moduleRepo, entitlementRepo)
	calculator := billing.NewCalculator(txRunner, moduleRepo, pricingRepo, store, cfg.Billing.Currency)
	resolver := permission.NewResolver(userRepo, store, cfg.Access.AdminRoles, nil)

	// El catálogo se siembra en cada arranque: upsert idempotente.
	if err := catalog.SeedDefaults(ctx, entitlement.DefaultModules()); err != nil {
		log.Fatal().Err(err).Msg("sembrar catálogo de módulos")
	}

	companyUC := usecase.NewCompanyUseCase(companyRepo, store)
	userUC := usecase.NewUserUseCase(userRepo)
	tenderUC := usecase.NewTenderUseCase(tenderRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "LicitaPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CompanyUC:       companyUC,
		UserUC:          userUC,
		TenderUC:        tenderUC,
		Catalog:         catalog,
		Store:           store,
		Calculator:      calculator,
		Resolver:        resolver,
		EntitlementRepo: entitlementRepo,
		JWTSecret:       cfg.JWT.Secret,
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
