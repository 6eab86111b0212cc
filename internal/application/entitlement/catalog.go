package entitlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/licitapro/licitaciones-api/internal/domain"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

// Catalog es la vista autoritativa del catálogo de módulos. Quien necesite
// validar o mostrar un módulo pasa por aquí, nunca por listas estáticas.
type Catalog struct {
	repo repository.ModuleRepository
}

// NewCatalog construye el catálogo sobre su puerto de persistencia.
func NewCatalog(repo repository.ModuleRepository) *Catalog {
	return &Catalog{repo: repo}
}

// ListActive devuelve los módulos activos ordenados por sort_order.
func (c *Catalog) ListActive(ctx context.Context) ([]*entity.ModuleDefinition, error) {
	defs, err := c.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar catálogo: %w", err)
	}
	return defs, nil
}

// GetByName devuelve la definición del módulo. Un slug desconocido es
// domain.ErrUnknownModule: el caller no puede activar ni mostrar lo que no existe.
func (c *Catalog) GetByName(ctx context.Context, name string) (*entity.ModuleDefinition, error) {
	def, err := c.repo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("buscar módulo %s: %w", name, err)
	}
	if def == nil {
		return nil, domain.ErrUnknownModule
	}
	return def, nil
}

// SeedDefaults hace upsert idempotente del catálogo: inserta los módulos que
// falten y actualiza los campos mutables (display, descripción, categoría,
// precio, orden) de los existentes, preservando ID e IsActive.
// Es seguro re-ejecutarlo en cada arranque.
func (c *Catalog) SeedDefaults(ctx context.Context, seeds []ModuleSeed) error {
	now := time.Now()
	for _, s := range seeds {
		existing, err := c.repo.GetByName(ctx, s.Name)
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.Name, err)
		}
		if existing == nil {
			def := &entity.ModuleDefinition{
				ID:           uuid.New().String(),
				Name:         s.Name,
				DisplayName:  s.DisplayName,
				Description:  s.Description,
				Category:     s.Category,
				IsCore:       s.IsCore,
				MonthlyPrice: s.MonthlyPrice,
				SortOrder:    s.SortOrder,
				IsActive:     true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := c.repo.Create(ctx, def); err != nil {
				return fmt.Errorf("seed insert %s: %w", s.Name, err)
			}
			continue
		}
		existing.DisplayName = s.DisplayName
		existing.Description = s.Description
		existing.Category = s.Category
		existing.IsCore = s.IsCore
		existing.MonthlyPrice = s.MonthlyPrice
		existing.SortOrder = s.SortOrder
		existing.UpdatedAt = now
		if err := c.repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("seed update %s: %w", s.Name, err)
		}
	}
	return nil
}
