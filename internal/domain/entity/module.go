package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías del catálogo de módulos.
const (
	CategoryCore    = "core"    // obligatorios, nunca se pueden desactivar
	CategoryFeature = "feature" // funcionalidad estándar contratable
	CategoryPremium = "premium" // funcionalidad de pago superior
)

// Nombres de módulos conocidos (deben coincidir con los seeds de module_definitions).
const (
	ModuleTenderManagement   = "tender_management"
	ModuleDocumentManagement = "document_management"
	ModuleUserManagement     = "user_management"
	ModuleCompanyManagement  = "company_management"
	ModuleReporting          = "reporting"
	ModuleNotes              = "notes"
	ModuleAdvancedSearch     = "advanced_search"
	ModuleCustomFields       = "custom_fields"
	ModuleAuditLog           = "audit_log"
	ModuleAnalytics          = "analytics"
	ModuleAPIAccess          = "api_access"
)

// ModuleDefinition es una entrada del catálogo global de módulos SaaS.
// Nunca se borra físicamente (IsActive=false la retira del catálogo) porque
// la facturación histórica la referencia.
type ModuleDefinition struct {
	ID           string
	Name         string // slug único, ver constantes Module*
	DisplayName  string
	Description  string
	Category     string // core | feature | premium
	IsCore       bool   // los módulos core no se pueden desactivar por empresa
	MonthlyPrice decimal.Decimal
	SortOrder    int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CompanyModuleEntitlement es la activación de un módulo en una empresa.
// Invariante: a lo sumo una fila por par (company, module); activar/desactivar
// muta la fila existente, nunca inserta duplicados. Se conserva como auditoría.
type CompanyModuleEntitlement struct {
	ID               string
	CompanyID        string
	ModuleName       string
	IsEnabled        bool
	EnabledAt        *time.Time
	EnabledBy        string // usuario que activó (último)
	DisabledAt       *time.Time
	DisabledBy       string // usuario que desactivó (último)
	BillingStartDate *time.Time // se fija en la primera activación y nunca se resetea
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CustomPricingOverride es un precio mensual específico por (empresa, módulo)
// que reemplaza el precio de catálogo. Invariante: a lo sumo un override activo
// por par; fijar uno nuevo desactiva los anteriores.
type CustomPricingOverride struct {
	ID            string
	CompanyID     string
	ModuleName    string
	MonthlyPrice  decimal.Decimal
	EffectiveDate time.Time
	IsActive      bool
	CreatedBy     string
	Notes         string
	CreatedAt     time.Time
}
