package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/licitapro/licitaciones-api/internal/domain"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
	"github.com/licitapro/licitaciones-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Calculator calcula el cargo mensual de una empresa a partir de sus
// entitlements, honrando overrides de precio. Todo es decimal (nunca float)
// y se calcula fresco en cada llamada: no hay saldos materializados ni caché.
type Calculator struct {
	tx        PricingTxRunner
	modRepo   repository.ModuleRepository
	priceRepo repository.PricingRepository
	enabled   EnabledLister
	currency  string // unidad monetaria, constante de configuración
}

// NewCalculator construye el calculador. currency viene de config (BILLING_CURRENCY).
func NewCalculator(tx PricingTxRunner, modRepo repository.ModuleRepository, priceRepo repository.PricingRepository, enabled EnabledLister, currency string) *Calculator {
	return &Calculator{tx: tx, modRepo: modRepo, priceRepo: priceRepo, enabled: enabled, currency: currency}
}

// Currency devuelve la unidad monetaria configurada.
func (c *Calculator) Currency() string { return c.currency }

// EffectivePrice devuelve el precio mensual vigente del módulo para la empresa:
// override activo si existe, si no el precio de catálogo, si no 0.
func (c *Calculator) EffectivePrice(ctx context.Context, companyID, moduleName string) (decimal.Decimal, error) {
	override, err := c.priceRepo.GetActive(ctx, companyID, moduleName)
	if err != nil {
		return decimal.Zero, fmt.Errorf("buscar override %s: %w", moduleName, err)
	}
	if override != nil {
		return override.MonthlyPrice, nil
	}
	def, err := c.modRepo.GetByName(ctx, moduleName)
	if err != nil {
		return decimal.Zero, fmt.Errorf("buscar módulo %s: %w", moduleName, err)
	}
	if def == nil {
		return decimal.Zero, nil
	}
	return def.MonthlyPrice, nil
}

// MonthlyTotal suma el precio efectivo de cada módulo activo de la empresa.
// Los módulos desactivados no aportan nada. Agregación read-through: cambios
// de entitlements u overrides se reflejan en la siguiente llamada.
func (c *Calculator) MonthlyTotal(ctx context.Context, companyID string) (decimal.Decimal, error) {
	names, err := c.enabled.ListEnabled(ctx, companyID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("listar módulos activos: %w", err)
	}
	total := decimal.Zero
	for _, name := range names {
		price, err := c.EffectivePrice(ctx, companyID, name)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(price)
	}
	return total, nil
}

// Line es el detalle de un módulo en el resumen de facturación.
type Line struct {
	ModuleName string
	Price      decimal.Decimal
	Overridden bool // true si aplica un override de precio
}

// Summary devuelve el total mensual con el detalle por módulo activo.
func (c *Calculator) Summary(ctx context.Context, companyID string) ([]Line, decimal.Decimal, error) {
	names, err := c.enabled.ListEnabled(ctx, companyID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("listar módulos activos: %w", err)
	}
	lines := make([]Line, 0, len(names))
	total := decimal.Zero
	for _, name := range names {
		override, err := c.priceRepo.GetActive(ctx, companyID, name)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("buscar override %s: %w", name, err)
		}
		price := decimal.Zero
		if override != nil {
			price = override.MonthlyPrice
		} else {
			def, err := c.modRepo.GetByName(ctx, name)
			if err != nil {
				return nil, decimal.Zero, fmt.Errorf("buscar módulo %s: %w", name, err)
			}
			if def != nil {
				price = def.MonthlyPrice
			}
		}
		lines = append(lines, Line{ModuleName: name, Price: price, Overridden: override != nil})
		total = total.Add(price)
	}
	return lines, total, nil
}

// SetCustomPrice fija un precio mensual propio para el par (empresa, módulo).
// Desactiva cualquier override activo anterior e inserta el nuevo en la misma
// transacción. Precio negativo = domain.ErrValidation, módulo desconocido =
// domain.ErrUnknownModule; ambos antes de escribir.
func (c *Calculator) SetCustomPrice(ctx context.Context, companyID, moduleName string, price decimal.Decimal, actorUserID, notes string, effectiveDate *time.Time) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrValidation)
	}

	err := c.tx.RunPricing(ctx, func(modRepo repository.ModuleRepository, priceRepo repository.PricingRepository) error {
		def, err := modRepo.GetByName(ctx, moduleName)
		if err != nil {
			return fmt.Errorf("buscar módulo %s: %w", moduleName, err)
		}
		if def == nil {
			return domain.ErrUnknownModule
		}
		if err := priceRepo.DeactivateActive(ctx, companyID, moduleName); err != nil {
			return fmt.Errorf("desactivar override anterior: %w", err)
		}
		now := time.Now()
		effective := now
		if effectiveDate != nil {
			effective = *effectiveDate
		}
		o := &entity.CustomPricingOverride{
			ID:            uuid.New().String(),
			CompanyID:     companyID,
			ModuleName:    moduleName,
			MonthlyPrice:  price,
			EffectiveDate: effective,
			IsActive:      true,
			CreatedBy:     actorUserID,
			Notes:         notes,
			CreatedAt:     now,
		}
		if err := priceRepo.Create(ctx, o); err != nil {
			return fmt.Errorf("insertar override: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownModule) || errors.Is(err, domain.ErrValidation) {
			return err
		}
		return errors.Join(domain.ErrPersistence, err)
	}
	return nil
}

// RemoveCustomPrice desactiva el override activo del par; el precio efectivo
// vuelve al de catálogo en la siguiente lectura. No falla si no había override.
func (c *Calculator) RemoveCustomPrice(ctx context.Context, companyID, moduleName string) error {
	if err := c.priceRepo.DeactivateActive(ctx, companyID, moduleName); err != nil {
		return errors.Join(domain.ErrPersistence, fmt.Errorf("desactivar override: %w", err))
	}
	return nil
}
