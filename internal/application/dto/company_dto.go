package dto

import "time"

// CreateCompanyRequest alta de empresa. IncludePremium activa también los
// módulos premium en el aprovisionamiento inicial.
type CreateCompanyRequest struct {
	Name           string `json:"name" validate:"required"`
	TaxID          string `json:"tax_id" validate:"required"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email" validate:"omitempty,email"`
	IncludePremium bool   `json:"include_premium"`
}

// CompanyResponse representación de una empresa en respuestas.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse listado paginado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
