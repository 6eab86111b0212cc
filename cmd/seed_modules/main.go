// seed_modules siembra el catálogo de módulos (module_definitions) en la base
// de datos. Es un upsert idempotente: se puede re-ejecutar sin efectos
// secundarios, igual que el seed que corre el API en cada arranque.
//
// Uso: go run ./cmd/seed_modules
// Lee la misma configuración que el API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"time"

	"github.com/licitapro/licitaciones-api/internal/application/entitlement"
	"github.com/licitapro/licitaciones-api/internal/infrastructure/postgres"
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	catalog := entitlement.NewCatalog(postgres.NewModuleRepository(pool))
	seeds := entitlement.DefaultModules()
	if err := catalog.SeedDefaults(ctx, seeds); err != nil {
		log.Fatal().Err(err).Msg("sembrar catálogo de módulos")
	}

	log.Info().Int("modules", len(seeds)).Msg("catálogo sembrado")
}
