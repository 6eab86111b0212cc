package entity

import "time"

// Roles válidos para User. Los roles equivalentes a "administrador de empresa"
// se configuran en pkg/config (ADMIN_ROLES); estas constantes son los valores por defecto.
const (
	RoleAdmin   = "admin"
	RoleGestor  = "gestor"   // gestiona licitaciones del día a día
	RoleConsult = "consulta" // solo lectura
)

// Estados válidos de un User. Cualquier estado distinto de active se resuelve
// como acceso denegado.
const (
	UserActive    = "active"
	UserInactive  = "inactive"
	UserSuspended = "suspended"
)

// User representa un usuario del sistema (pertenece a una Company, salvo super admins).
type User struct {
	ID           string
	CompanyID    string // vacío = sin empresa asignada (solo válido para super admins)
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, gestor, consulta
	IsSuperAdmin bool   // bypass total de módulos y roles
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
