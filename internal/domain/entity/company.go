package entity

import "time"

// Estados válidos para Company.
const (
	CompanyActive    = "active"
	CompanySuspended = "suspended"
	CompanyInactive  = "inactive"
)

// Company representa una organización/tenant del sistema de licitaciones.
// Cada Company es dueña de sus filas de entitlement (borrado en cascada en DB).
type Company struct {
	ID        string
	Name      string
	TaxID     string // identificación tributaria (con o sin dígito de verificación)
	Address   string
	Phone     string
	Email     string
	Status    string // ver constantes Company*
	CreatedAt time.Time
	UpdatedAt time.Time
}
