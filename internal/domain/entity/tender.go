package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Tender.
const (
	TenderOpen      = "open"
	TenderSubmitted = "submitted"
	TenderAwarded   = "awarded"
	TenderClosed    = "closed"
)

// Tender representa una licitación que la empresa está gestionando.
type Tender struct {
	ID             string
	CompanyID      string
	Reference      string // número de referencia del pliego (único por empresa)
	Title          string
	Description    string
	Entity         string // entidad convocante
	EstimatedValue decimal.Decimal
	ClosingDate    *time.Time
	Status         string // ver constantes Tender*
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TenderNote es una nota interna sobre una licitación (requiere módulo notes).
type TenderNote struct {
	ID        string
	TenderID  string
	AuthorID  string
	Body      string
	CreatedAt time.Time
}
