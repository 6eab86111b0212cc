package entitlement

import (
	"context"

	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la fila de entitlement y sus
// campos de auditoría se escriban juntos o no se escriban.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		modRepo repository.ModuleRepository,
		entRepo repository.EntitlementRepository,
	) error) error
}
