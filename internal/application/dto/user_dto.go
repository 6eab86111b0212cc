package dto

import "time"

// RegisterRequest alta de usuario dentro de una empresa.
type RegisterRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Name      string `json:"name"`
	Role      string `json:"role"` // admin, gestor, consulta; default consulta
}

// LoginRequest credenciales de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse representación de un usuario en respuestas (nunca incluye el hash).
type UserResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id,omitempty"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsSuperAdmin bool      `json:"is_super_admin,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SetUserStatusRequest cambio de estado de un usuario.
type SetUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive suspended"`
}

// PermissionsResponse vista de permisos efectivos del usuario autenticado.
type PermissionsResponse struct {
	IsSuperAdmin   bool            `json:"is_super_admin"`
	IsCompanyAdmin bool            `json:"is_company_admin"`
	AllModules     bool            `json:"all_modules"`
	EnabledModules []string        `json:"enabled_modules"`
	Capabilities   map[string]bool `json:"capabilities"`
}
