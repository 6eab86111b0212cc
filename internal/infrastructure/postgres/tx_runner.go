package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/licitapro/licitaciones-api/internal/application/billing"
	"github.com/licitapro/licitaciones-api/internal/application/entitlement"
	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

// Ensure TxRunner implementa entitlement.TxRunner y billing.PricingTxRunner.
var _ entitlement.TxRunner = (*TxRunner)(nil)
var _ billing.PricingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. La fila de
// entitlement (o el par desactivar/insertar de pricing) confirma completa o
// no confirma nada: sin estados parciales.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de entitlements atados a la tx y
// hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	modRepo repository.ModuleRepository,
	entRepo repository.EntitlementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewModuleRepository(tx), NewEntitlementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPricing inicia una transacción con los repos de pricing (para SetCustomPrice).
func (r *TxRunner) RunPricing(ctx context.Context, fn func(
	modRepo repository.ModuleRepository,
	priceRepo repository.PricingRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewModuleRepository(tx), NewPricingRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
