package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/licitapro/licitaciones-api/internal/domain"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

var _ repository.EntitlementRepository = (*EntitlementRepo)(nil)

// EntitlementRepo implementación del puerto EntitlementRepository sobre PostgreSQL.
// La tabla company_module_entitlements tiene UNIQUE (company_id, module_name):
// la DB misma rechaza filas duplicadas por par.
type EntitlementRepo struct {
	q Querier
}

// NewEntitlementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntitlementRepository(q Querier) *EntitlementRepo {
	return &EntitlementRepo{q: q}
}

const entitlementColumns = `id, company_id, module_name, is_enabled, enabled_at, enabled_by, disabled_at, disabled_by, billing_start_date, notes, created_at, updated_at`

// GetByCompanyAndModule obtiene la fila del par. Devuelve (nil, nil) si no hay.
func (r *EntitlementRepo) GetByCompanyAndModule(ctx context.Context, companyID, moduleName string) (*entity.CompanyModuleEntitlement, error) {
	query := `SELECT ` + entitlementColumns + `
		FROM company_module_entitlements WHERE company_id = $1 AND module_name = $2`
	var e entity.CompanyModuleEntitlement
	err := r.q.QueryRow(ctx, query, companyID, moduleName).Scan(
		&e.ID, &e.CompanyID, &e.ModuleName, &e.IsEnabled,
		&e.EnabledAt, &e.EnabledBy, &e.DisabledAt, &e.DisabledBy,
		&e.BillingStartDate, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entitlement: %w", err)
	}
	return &e, nil
}

// ListByCompany devuelve todas las filas de entitlement de la empresa (auditoría incluida).
func (r *EntitlementRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.CompanyModuleEntitlement, error) {
	query := `SELECT ` + entitlementColumns + `
		FROM company_module_entitlements WHERE company_id = $1 ORDER BY module_name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list entitlements: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyModuleEntitlement
	for rows.Next() {
		var e entity.CompanyModuleEntitlement
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.ModuleName, &e.IsEnabled,
			&e.EnabledAt, &e.EnabledBy, &e.DisabledAt, &e.DisabledBy,
			&e.BillingStartDate, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan entitlement: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListEnabledNames devuelve los nombres de módulos con is_enabled=true, vía índice.
func (r *EntitlementRepo) ListEnabledNames(ctx context.Context, companyID string) ([]string, error) {
	query := `
		SELECT module_name FROM company_module_entitlements
		 WHERE company_id = $1 AND is_enabled = true ORDER BY module_name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list enabled modules: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan module name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Create inserta la fila del par. domain.ErrDuplicate si ya existe (constraint único).
func (r *EntitlementRepo) Create(ctx context.Context, e *entity.CompanyModuleEntitlement) error {
	query := `
		INSERT INTO company_module_entitlements (` + entitlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.ModuleName, e.IsEnabled,
		e.EnabledAt, e.EnabledBy, e.DisabledAt, e.DisabledBy,
		e.BillingStartDate, e.Notes, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert entitlement: %w", err)
	}
	return nil
}

// Update muta la fila existente: estado + auditoría en un solo statement.
func (r *EntitlementRepo) Update(ctx context.Context, e *entity.CompanyModuleEntitlement) error {
	query := `
		UPDATE company_module_entitlements
		   SET is_enabled = $2, enabled_at = $3, enabled_by = $4,
		       disabled_at = $5, disabled_by = $6, billing_start_date = $7,
		       notes = $8, updated_at = $9
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		e.ID, e.IsEnabled, e.EnabledAt, e.EnabledBy,
		e.DisabledAt, e.DisabledBy, e.BillingStartDate,
		e.Notes, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update entitlement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
