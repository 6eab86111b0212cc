package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/licitapro/licitaciones-api/internal/application/dto"
	"github.com/licitapro/licitaciones-api/internal/domain"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

// TenderUseCase CRUD de licitaciones y notas. El control de acceso por módulo
// (tender_management, notes) lo aplican los middlewares RequireModule de la
// capa HTTP sobre el PermissionSet resuelto; aquí solo reglas de negocio.
type TenderUseCase struct {
	repo repository.TenderRepository
}

// NewTenderUseCase construye el caso de uso de licitaciones.
func NewTenderUseCase(repo repository.TenderRepository) *TenderUseCase {
	return &TenderUseCase{repo: repo}
}

// Create crea una licitación. Devuelve domain.ErrDuplicate si la referencia ya
// existe en la empresa.
func (uc *TenderUseCase) Create(ctx context.Context, companyID, actorUserID string, in dto.CreateTenderRequest) (*dto.TenderResponse, error) {
	existing, err := uc.repo.GetByCompanyAndReference(ctx, companyID, in.Reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	t := &entity.Tender{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Reference:      in.Reference,
		Title:          in.Title,
		Description:    in.Description,
		Entity:         in.Entity,
		EstimatedValue: in.EstimatedValue,
		ClosingDate:    in.ClosingDate,
		Status:         entity.TenderOpen,
		CreatedBy:      actorUserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTenderResponse(t), nil
}

// GetByID obtiene una licitación de la empresa. domain.ErrNotFound si no existe
// o pertenece a otra empresa (los tenants nunca ven datos ajenos).
func (uc *TenderUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.TenderResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toTenderResponse(t), nil
}

// List lista las licitaciones de la empresa con paginación.
func (uc *TenderUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.TenderListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenderResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTenderResponse(t))
	}
	return &dto.TenderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update modifica los campos presentes en el request.
func (uc *TenderUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateTenderRequest) (*dto.TenderResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Entity != nil {
		t.Entity = *in.Entity
	}
	if in.EstimatedValue != nil {
		t.EstimatedValue = *in.EstimatedValue
	}
	if in.ClosingDate != nil {
		t.ClosingDate = in.ClosingDate
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTenderResponse(t), nil
}

// Delete elimina una licitación de la empresa.
func (uc *TenderUseCase) Delete(ctx context.Context, companyID, id string) error {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil || t.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// AddNote agrega una nota interna a una licitación de la empresa.
func (uc *TenderUseCase) AddNote(ctx context.Context, companyID, tenderID, authorID string, in dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	t, err := uc.repo.GetByID(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	n := &entity.TenderNote{
		ID:        uuid.New().String(),
		TenderID:  tenderID,
		AuthorID:  authorID,
		Body:      in.Body,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateNote(ctx, n); err != nil {
		return nil, err
	}
	return toNoteResponse(n), nil
}

// ListNotes lista las notas de una licitación de la empresa.
func (uc *TenderUseCase) ListNotes(ctx context.Context, companyID, tenderID string) ([]dto.NoteResponse, error) {
	t, err := uc.repo.GetByID(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	notes, err := uc.repo.ListNotes(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		items = append(items, *toNoteResponse(n))
	}
	return items, nil
}

func toTenderResponse(t *entity.Tender) *dto.TenderResponse {
	if t == nil {
		return nil
	}
	return &dto.TenderResponse{
		ID:             t.ID,
		CompanyID:      t.CompanyID,
		Reference:      t.Reference,
		Title:          t.Title,
		Description:    t.Description,
		Entity:         t.Entity,
		EstimatedValue: t.EstimatedValue,
		ClosingDate:    t.ClosingDate,
		Status:         t.Status,
		CreatedBy:      t.CreatedBy,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toNoteResponse(n *entity.TenderNote) *dto.NoteResponse {
	if n == nil {
		return nil
	}
	return &dto.NoteResponse{
		ID:        n.ID,
		TenderID:  n.TenderID,
		AuthorID:  n.AuthorID,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
	}
}
