package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTenderRequest alta de licitación.
type CreateTenderRequest struct {
	Reference      string          `json:"reference" validate:"required"`
	Title          string          `json:"title" validate:"required"`
	Description    string          `json:"description"`
	Entity         string          `json:"entity"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	ClosingDate    *time.Time      `json:"closing_date"`
}

// UpdateTenderRequest modificación parcial de una licitación.
type UpdateTenderRequest struct {
	Title          *string          `json:"title"`
	Description    *string          `json:"description"`
	Entity         *string          `json:"entity"`
	EstimatedValue *decimal.Decimal `json:"estimated_value"`
	ClosingDate    *time.Time       `json:"closing_date"`
	Status         *string          `json:"status"`
}

// TenderResponse representación de una licitación en respuestas.
type TenderResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	Reference      string          `json:"reference"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Entity         string          `json:"entity,omitempty"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	ClosingDate    *time.Time      `json:"closing_date,omitempty"`
	Status         string          `json:"status"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TenderListResponse listado paginado de licitaciones.
type TenderListResponse struct {
	Items []TenderResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CreateNoteRequest alta de nota interna (requiere módulo notes).
type CreateNoteRequest struct {
	Body string `json:"body" validate:"required"`
}

// NoteResponse nota interna de una licitación.
type NoteResponse struct {
	ID        string    `json:"id"`
	TenderID  string    `json:"tender_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
