package repository

import (
	"context"

	"github.com/licitapro/licitaciones-api/internal/domain/entity"
)

// ModuleRepository define el puerto de persistencia del catálogo de módulos (DIP).
// La implementación vive en infrastructure.
type ModuleRepository interface {
	Create(ctx context.Context, def *entity.ModuleDefinition) error
	Update(ctx context.Context, def *entity.ModuleDefinition) error
	// GetByName devuelve (nil, nil) si el slug no existe.
	GetByName(ctx context.Context, name string) (*entity.ModuleDefinition, error)
	// ListActive devuelve los módulos con is_active=true ordenados por sort_order.
	ListActive(ctx context.Context) ([]*entity.ModuleDefinition, error)
	ListAll(ctx context.Context) ([]*entity.ModuleDefinition, error)
}
