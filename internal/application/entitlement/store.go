package entitlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/licitapro/licitaciones-api/internal/domain"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

// Store es la fuente de verdad de qué módulos tiene activos cada empresa,
// con rastro de auditoría de cada cambio. Toda mutación de entitlements pasa
// por aquí; la facturación se calcula siempre on-demand leyendo este estado.
type Store struct {
	tx      TxRunner
	modRepo repository.ModuleRepository
	entRepo repository.EntitlementRepository
}

// NewStore construye el store con el runner transaccional y los puertos de lectura.
func NewStore(tx TxRunner, modRepo repository.ModuleRepository, entRepo repository.EntitlementRepository) *Store {
	return &Store{tx: tx, modRepo: modRepo, entRepo: entRepo}
}

// IsEnabled informa si la empresa tiene el módulo activo. Falla cerrado:
// módulo desconocido o sin fila de entitlement = false, nunca error por eso.
// Devuelve error solo ante fallos de infraestructura.
func (s *Store) IsEnabled(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, nil
	}
	row, err := s.entRepo.GetByCompanyAndModule(ctx, companyID, moduleName)
	if err != nil {
		return false, fmt.Errorf("consultar módulo %s: %w", moduleName, err)
	}
	if row == nil {
		return false, nil
	}
	return row.IsEnabled, nil
}

// ListEnabled devuelve los nombres de módulos activos de la empresa.
// Lo consumen tanto el resolver de permisos como la facturación.
func (s *Store) ListEnabled(ctx context.Context, companyID string) ([]string, error) {
	names, err := s.entRepo.ListEnabledNames(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar módulos activos: %w", err)
	}
	return names, nil
}

// ListWithState devuelve cada módulo activo del catálogo junto con su estado
// actual en la empresa: data plana para que la capa de presentación pinte el
// toggle sin esquemas dinámicos.
func (s *Store) ListWithState(ctx context.Context, companyID string) ([]ModuleState, error) {
	defs, err := s.modRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar catálogo: %w", err)
	}
	enabled, err := s.entRepo.ListEnabledNames(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar módulos activos: %w", err)
	}
	on := make(map[string]bool, len(enabled))
	for _, n := range enabled {
		on[n] = true
	}
	states := make([]ModuleState, 0, len(defs))
	for _, d := range defs {
		states = append(states, ModuleState{Definition: d, IsEnabled: on[d.Name]})
	}
	return states, nil
}

// ModuleState es un par (definición, estado actual) para la UI de toggles.
type ModuleState struct {
	Definition *entity.ModuleDefinition
	IsEnabled  bool
}

// SetEnabled activa o desactiva un módulo para una empresa, dentro de una
// transacción que escribe la fila y sus campos de auditoría juntos.
//
// Reglas (validadas antes de cualquier escritura):
//   - domain.ErrUnknownModule si el slug no está en el catálogo.
//   - domain.ErrCoreModule si se intenta desactivar un módulo core.
//   - Idempotente: repetir con el mismo enabled no muta nada observable.
//   - BillingStartDate se fija en la primera activación y nunca se resetea.
func (s *Store) SetEnabled(ctx context.Context, companyID, moduleName string, enabled bool, actorUserID, notes string) error {
	if companyID == "" || moduleName == "" {
		return fmt.Errorf("%w: companyID y moduleName son obligatorios", domain.ErrValidation)
	}

	err := s.tx.Run(ctx, func(modRepo repository.ModuleRepository, entRepo repository.EntitlementRepository) error {
		def, err := modRepo.GetByName(ctx, moduleName)
		if err != nil {
			return fmt.Errorf("buscar módulo %s: %w", moduleName, err)
		}
		if def == nil {
			return domain.ErrUnknownModule
		}
		if def.IsCore && !enabled {
			return domain.ErrCoreModule
		}

		now := time.Now()
		row, err := entRepo.GetByCompanyAndModule(ctx, companyID, moduleName)
		if err != nil {
			return fmt.Errorf("buscar entitlement: %w", err)
		}

		if row == nil {
			row = &entity.CompanyModuleEntitlement{
				ID:         uuid.New().String(),
				CompanyID:  companyID,
				ModuleName: moduleName,
				IsEnabled:  enabled,
				Notes:      notes,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if enabled {
				row.EnabledAt = &now
				row.EnabledBy = actorUserID
				row.BillingStartDate = &now
			} else {
				row.DisabledAt = &now
				row.DisabledBy = actorUserID
			}
			if err := entRepo.Create(ctx, row); err != nil {
				return fmt.Errorf("crear entitlement: %w", err)
			}
			return nil
		}

		// Sin cambio de estado: no tocar la auditoría.
		if row.IsEnabled == enabled {
			return nil
		}

		row.IsEnabled = enabled
		row.UpdatedAt = now
		if notes != "" {
			row.Notes = notes
		}
		if enabled {
			row.EnabledAt = &now
			row.EnabledBy = actorUserID
			if row.BillingStartDate == nil {
				row.BillingStartDate = &now
			}
		} else {
			row.DisabledAt = &now
			row.DisabledBy = actorUserID
		}
		if err := entRepo.Update(ctx, row); err != nil {
			return fmt.Errorf("actualizar entitlement: %w", err)
		}
		return nil
	})
	if err != nil {
		if isDomainErr(err) {
			return err
		}
		return errors.Join(domain.ErrPersistence, err)
	}
	return nil
}

// BulkSetup activa los módulos iniciales de una empresa recién aprovisionada:
// todos los core, todos los feature y los premium solo si includePremium.
// Idempotente: re-ejecutarlo no cambia los módulos que ya están en el estado deseado.
func (s *Store) BulkSetup(ctx context.Context, companyID string, includePremium bool, actorUserID string) error {
	defs, err := s.modRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("listar catálogo: %w", err)
	}
	for _, def := range defs {
		include := def.IsCore || def.Category == entity.CategoryFeature ||
			(def.Category == entity.CategoryPremium && includePremium)
		if !include {
			continue
		}
		if err := s.SetEnabled(ctx, companyID, def.Name, true, actorUserID, "activación inicial"); err != nil {
			return fmt.Errorf("activar %s: %w", def.Name, err)
		}
	}
	return nil
}

// isDomainErr distingue los errores tipados de validación de los fallos de
// infraestructura, que se reportan como domain.ErrPersistence.
func isDomainErr(err error) bool {
	return errors.Is(err, domain.ErrUnknownModule) ||
		errors.Is(err, domain.ErrCoreModule) ||
		errors.Is(err, domain.ErrValidation)
}
