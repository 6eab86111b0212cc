package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ModuleResponse entrada del catálogo de módulos.
type ModuleResponse struct {
	Name         string          `json:"name"`
	DisplayName  string          `json:"display_name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category"`
	IsCore       bool            `json:"is_core"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	SortOrder    int             `json:"sort_order"`
}

// ModuleStateResponse par (módulo, estado en la empresa) para la UI de toggles:
// data plana, sin esquemas dinámicos.
type ModuleStateResponse struct {
	Module    ModuleResponse `json:"module"`
	IsEnabled bool           `json:"is_enabled"`
}

// ToggleModuleRequest activación/desactivación de un módulo para una empresa.
type ToggleModuleRequest struct {
	Enabled bool   `json:"enabled"`
	Notes   string `json:"notes"`
}

// BulkSetupRequest aprovisionamiento inicial de módulos.
type BulkSetupRequest struct {
	IncludePremium bool `json:"include_premium"`
}

// EntitlementResponse fila de entitlement con su auditoría.
type EntitlementResponse struct {
	ModuleName       string     `json:"module_name"`
	IsEnabled        bool       `json:"is_enabled"`
	EnabledAt        *time.Time `json:"enabled_at,omitempty"`
	EnabledBy        string     `json:"enabled_by,omitempty"`
	DisabledAt       *time.Time `json:"disabled_at,omitempty"`
	DisabledBy       string     `json:"disabled_by,omitempty"`
	BillingStartDate *time.Time `json:"billing_start_date,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}
