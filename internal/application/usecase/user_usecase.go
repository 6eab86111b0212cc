package usecase

import (
	"context"

	"github.com/licitapro/licitaciones-api/internal/application/dto"
	"github.com/licitapro/licitaciones-api/internal/domain"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

// UserUseCase consultas y administración de usuarios de una empresa.
// El alta con password vive en auth.AuthUseCase.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario. Devuelve domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// ListByCompany lista los usuarios de una empresa con paginación.
func (uc *UserUseCase) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return items, nil
}

// SetStatus cambia el estado de un usuario (active, inactive, suspended).
func (uc *UserUseCase) SetStatus(ctx context.Context, id, status string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.Status = status
	return uc.repo.Update(ctx, user)
}

// ToUserResponse convierte la entidad a DTO sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		CompanyID:    u.CompanyID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		IsSuperAdmin: u.IsSuperAdmin,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
