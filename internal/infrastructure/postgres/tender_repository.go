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

var _ repository.TenderRepository = (*TenderRepo)(nil)

// TenderRepo implementación del puerto TenderRepository sobre PostgreSQL.
type TenderRepo struct {
	q Querier
}

// NewTenderRepository construye el adaptador de persistencia para licitaciones.
func NewTenderRepository(q Querier) *TenderRepo {
	return &TenderRepo{q: q}
}

const tenderColumns = `id, company_id, reference, title, description, entity, estimated_value, closing_date, status, created_by, created_at, updated_at`

// Create persiste una nueva licitación. domain.ErrDuplicate si la referencia
// ya existe en la empresa (constraint único company_id+reference).
func (r *TenderRepo) Create(ctx context.Context, t *entity.Tender) error {
	query := `
		INSERT INTO tenders (` + tenderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyID, t.Reference, t.Title, t.Description, t.Entity,
		t.EstimatedValue, t.ClosingDate, t.Status, t.CreatedBy,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tender: %w", err)
	}
	return nil
}

// GetByID obtiene una licitación por ID. Devuelve (nil, nil) si no existe.
func (r *TenderRepo) GetByID(ctx context.Context, id string) (*entity.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tenders WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByCompanyAndReference obtiene una licitación por empresa y referencia.
func (r *TenderRepo) GetByCompanyAndReference(ctx context.Context, companyID, reference string) (*entity.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tenders WHERE company_id = $1 AND reference = $2`
	var t entity.Tender
	err := r.q.QueryRow(ctx, query, companyID, reference).Scan(
		&t.ID, &t.CompanyID, &t.Reference, &t.Title, &t.Description, &t.Entity,
		&t.EstimatedValue, &t.ClosingDate, &t.Status, &t.CreatedBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tender by reference: %w", err)
	}
	return &t, nil
}

// ListByCompany lista las licitaciones de la empresa, más recientes primero.
func (r *TenderRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Tender, error) {
	query := `SELECT ` + tenderColumns + `
		FROM tenders WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Tender
	for rows.Next() {
		var t entity.Tender
		if err := rows.Scan(
			&t.ID, &t.CompanyID, &t.Reference, &t.Title, &t.Description, &t.Entity,
			&t.EstimatedValue, &t.ClosingDate, &t.Status, &t.CreatedBy,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tender: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza una licitación existente.
func (r *TenderRepo) Update(ctx context.Context, t *entity.Tender) error {
	query := `
		UPDATE tenders SET title = $2, description = $3, entity = $4, estimated_value = $5,
		       closing_date = $6, status = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		t.ID, t.Title, t.Description, t.Entity, t.EstimatedValue,
		t.ClosingDate, t.Status, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tender: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una licitación (las notas caen en cascada en DB).
func (r *TenderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM tenders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tender: %w", err)
	}
	return nil
}

// CreateNote persiste una nota interna.
func (r *TenderRepo) CreateNote(ctx context.Context, n *entity.TenderNote) error {
	query := `
		INSERT INTO tender_notes (id, tender_id, author_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, n.ID, n.TenderID, n.AuthorID, n.Body, n.CreatedAt); err != nil {
		return fmt.Errorf("insert tender note: %w", err)
	}
	return nil
}

// ListNotes lista las notas de una licitación, más recientes primero.
func (r *TenderRepo) ListNotes(ctx context.Context, tenderID string) ([]*entity.TenderNote, error) {
	query := `
		SELECT id, tender_id, author_id, body, created_at
		FROM tender_notes WHERE tender_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, tenderID)
	if err != nil {
		return nil, fmt.Errorf("list tender notes: %w", err)
	}
	defer rows.Close()

	var list []*entity.TenderNote
	for rows.Next() {
		var n entity.TenderNote
		if err := rows.Scan(&n.ID, &n.TenderID, &n.AuthorID, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tender note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (r *TenderRepo) getOne(ctx context.Context, query string, arg any) (*entity.Tender, error) {
	var t entity.Tender
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&t.ID, &t.CompanyID, &t.Reference, &t.Title, &t.Description, &t.Entity,
		&t.EstimatedValue, &t.ClosingDate, &t.Status, &t.CreatedBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tender: %w", err)
	}
	return &t, nil
}
