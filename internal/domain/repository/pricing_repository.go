package repository

import (
	"context"

	"github.com/licitapro/licitaciones-api/internal/domain/entity"
)

// PricingRepository define el puerto de persistencia de overrides de precio.
// Invariante de tabla: a lo sumo una fila activa por (company_id, module_name);
// DeactivateActive + Create se ejecutan dentro de la misma transacción.
type PricingRepository interface {
	// GetActive devuelve el override activo del par, o (nil, nil) si no hay.
	GetActive(ctx context.Context, companyID, moduleName string) (*entity.CustomPricingOverride, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.CustomPricingOverride, error)
	// ListByPair devuelve el historial completo del par (auditoría), más reciente primero.
	ListByPair(ctx context.Context, companyID, moduleName string) ([]*entity.CustomPricingOverride, error)
	Create(ctx context.Context, o *entity.CustomPricingOverride) error
	// DeactivateActive marca is_active=false en los overrides activos del par. No falla si no hay.
	DeactivateActive(ctx context.Context, companyID, moduleName string) error
}
