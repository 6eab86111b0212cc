package repository

import (
	"context"

	"github.com/licitapro/licitaciones-api/internal/domain/entity"
)

// EntitlementRepository define el puerto de persistencia de activaciones de
// módulo por empresa. La tabla tiene constraint único (company_id, module_name):
// el motor muta la fila existente en vez de insertar duplicados.
type EntitlementRepository interface {
	// GetByCompanyAndModule devuelve (nil, nil) si no hay fila para el par.
	GetByCompanyAndModule(ctx context.Context, companyID, moduleName string) (*entity.CompanyModuleEntitlement, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.CompanyModuleEntitlement, error)
	// ListEnabledNames devuelve los nombres de módulos con is_enabled=true.
	ListEnabledNames(ctx context.Context, companyID string) ([]string, error)
	Create(ctx context.Context, e *entity.CompanyModuleEntitlement) error
	Update(ctx context.Context, e *entity.CompanyModuleEntitlement) error
}
