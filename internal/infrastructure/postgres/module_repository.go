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

var _ repository.ModuleRepository = (*ModuleRepo)(nil)

// ModuleRepo implementación del puerto ModuleRepository sobre PostgreSQL (usable con pool o tx).
type ModuleRepo struct {
	q Querier
}

// NewModuleRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewModuleRepository(q Querier) *ModuleRepo {
	return &ModuleRepo{q: q}
}

const moduleColumns = `id, name, display_name, description, category, is_core, monthly_price, sort_order, is_active, created_at, updated_at`

// Create inserta una definición de módulo en el catálogo.
func (r *ModuleRepo) Create(ctx context.Context, def *entity.ModuleDefinition) error {
	query := `
		INSERT INTO module_definitions (` + moduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		def.ID, def.Name, def.DisplayName, def.Description, def.Category,
		def.IsCore, def.MonthlyPrice, def.SortOrder, def.IsActive,
		def.CreatedAt, def.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert module: %w", err)
	}
	return nil
}

// Update actualiza una definición existente (por ID; el slug no cambia).
func (r *ModuleRepo) Update(ctx context.Context, def *entity.ModuleDefinition) error {
	query := `
		UPDATE module_definitions
		   SET display_name = $2, description = $3, category = $4, is_core = $5,
		       monthly_price = $6, sort_order = $7, is_active = $8, updated_at = $9
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		def.ID, def.DisplayName, def.Description, def.Category, def.IsCore,
		def.MonthlyPrice, def.SortOrder, def.IsActive, def.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update module: %w", err)
	}
	return nil
}

// GetByName obtiene un módulo por slug. Devuelve (nil, nil) si no existe.
func (r *ModuleRepo) GetByName(ctx context.Context, name string) (*entity.ModuleDefinition, error) {
	query := `SELECT ` + moduleColumns + ` FROM module_definitions WHERE name = $1`
	var d entity.ModuleDefinition
	err := r.q.QueryRow(ctx, query, name).Scan(
		&d.ID, &d.Name, &d.DisplayName, &d.Description, &d.Category,
		&d.IsCore, &d.MonthlyPrice, &d.SortOrder, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get module: %w", err)
	}
	return &d, nil
}

// ListActive devuelve los módulos activos ordenados por sort_order.
func (r *ModuleRepo) ListActive(ctx context.Context) ([]*entity.ModuleDefinition, error) {
	query := `SELECT ` + moduleColumns + ` FROM module_definitions WHERE is_active = true ORDER BY sort_order`
	return r.list(ctx, query)
}

// ListAll devuelve el catálogo completo, incluidos los desactivados.
func (r *ModuleRepo) ListAll(ctx context.Context) ([]*entity.ModuleDefinition, error) {
	query := `SELECT ` + moduleColumns + ` FROM module_definitions ORDER BY sort_order`
	return r.list(ctx, query)
}

func (r *ModuleRepo) list(ctx context.Context, query string) ([]*entity.ModuleDefinition, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var list []*entity.ModuleDefinition
	for rows.Next() {
		var d entity.ModuleDefinition
		if err := rows.Scan(
			&d.ID, &d.Name, &d.DisplayName, &d.Description, &d.Category,
			&d.IsCore, &d.MonthlyPrice, &d.SortOrder, &d.IsActive,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
