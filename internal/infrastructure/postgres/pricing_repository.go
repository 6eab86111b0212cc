package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

var _ repository.PricingRepository = (*PricingRepo)(nil)

// PricingRepo implementación del puerto PricingRepository sobre PostgreSQL.
// Un índice único parcial (company_id, module_name) WHERE is_active refuerza
// en la DB el invariante de "un solo override activo por par".
type PricingRepo struct {
	q Querier
}

// NewPricingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPricingRepository(q Querier) *PricingRepo {
	return &PricingRepo{q: q}
}

const pricingColumns = `id, company_id, module_name, monthly_price, effective_date, is_active, created_by, notes, created_at`

// GetActive obtiene el override activo del par. Devuelve (nil, nil) si no hay.
func (r *PricingRepo) GetActive(ctx context.Context, companyID, moduleName string) (*entity.CustomPricingOverride, error) {
	query := `SELECT ` + pricingColumns + `
		FROM custom_pricing_overrides
		WHERE company_id = $1 AND module_name = $2 AND is_active = true`
	var o entity.CustomPricingOverride
	err := r.q.QueryRow(ctx, query, companyID, moduleName).Scan(
		&o.ID, &o.CompanyID, &o.ModuleName, &o.MonthlyPrice,
		&o.EffectiveDate, &o.IsActive, &o.CreatedBy, &o.Notes, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pricing override: %w", err)
	}
	return &o, nil
}

// ListActiveByCompany devuelve los overrides activos de la empresa.
func (r *PricingRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.CustomPricingOverride, error) {
	query := `SELECT ` + pricingColumns + `
		FROM custom_pricing_overrides
		WHERE company_id = $1 AND is_active = true ORDER BY module_name`
	return r.list(ctx, query, companyID)
}

// ListByPair devuelve el historial completo del par, más reciente primero.
func (r *PricingRepo) ListByPair(ctx context.Context, companyID, moduleName string) ([]*entity.CustomPricingOverride, error) {
	query := `SELECT ` + pricingColumns + `
		FROM custom_pricing_overrides
		WHERE company_id = $1 AND module_name = $2 ORDER BY created_at DESC`
	return r.list(ctx, query, companyID, moduleName)
}

// Create inserta un override nuevo.
func (r *PricingRepo) Create(ctx context.Context, o *entity.CustomPricingOverride) error {
	query := `
		INSERT INTO custom_pricing_overrides (` + pricingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.ModuleName, o.MonthlyPrice,
		o.EffectiveDate, o.IsActive, o.CreatedBy, o.Notes, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pricing override: %w", err)
	}
	return nil
}

// DeactivateActive marca is_active=false en los overrides activos del par.
// No falla si no había ninguno.
func (r *PricingRepo) DeactivateActive(ctx context.Context, companyID, moduleName string) error {
	query := `
		UPDATE custom_pricing_overrides SET is_active = false
		 WHERE company_id = $1 AND module_name = $2 AND is_active = true`
	if _, err := r.q.Exec(ctx, query, companyID, moduleName); err != nil {
		return fmt.Errorf("deactivate pricing override: %w", err)
	}
	return nil
}

func (r *PricingRepo) list(ctx context.Context, query string, args ...any) ([]*entity.CustomPricingOverride, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pricing overrides: %w", err)
	}
	defer rows.Close()

	var list []*entity.CustomPricingOverride
	for rows.Next() {
		var o entity.CustomPricingOverride
		if err := rows.Scan(
			&o.ID, &o.CompanyID, &o.ModuleName, &o.MonthlyPrice,
			&o.EffectiveDate, &o.IsActive, &o.CreatedBy, &o.Notes, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pricing override: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
