package repository

import (
	"context"

	"github.com/licitapro/licitaciones-api/internal/domain/entity"
)

// TenderRepository define el puerto de persistencia para licitaciones y sus notas.
type TenderRepository interface {
	Create(ctx context.Context, t *entity.Tender) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Tender, error)
	GetByCompanyAndReference(ctx context.Context, companyID, reference string) (*entity.Tender, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Tender, error)
	Update(ctx context.Context, t *entity.Tender) error
	Delete(ctx context.Context, id string) error

	CreateNote(ctx context.Context, n *entity.TenderNote) error
	ListNotes(ctx context.Context, tenderID string) ([]*entity.TenderNote, error)
}
