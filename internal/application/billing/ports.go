package billing

import (
	"context"

	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

// PricingTxRunner ejecuta una función dentro de una transacción de BD con los
// repos de pricing atados a esa tx. Desactivar el override anterior e insertar
// el nuevo deben confirmar juntos (a lo sumo un override activo por par).
type PricingTxRunner interface {
	RunPricing(ctx context.Context, fn func(
		modRepo repository.ModuleRepository,
		priceRepo repository.PricingRepository,
	) error) error
}

// EnabledLister es el contrato mínimo que necesita la facturación del store de
// entitlements. Lo implementa *entitlement.Store; la interfaz evita acoplar paquetes.
type EnabledLister interface {
	ListEnabled(ctx context.Context, companyID string) ([]string, error)
}
