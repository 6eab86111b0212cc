package entitlement

import (
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ModuleSeed es la configuración de un módulo para el seed del catálogo.
type ModuleSeed struct {
	Name         string
	DisplayName  string
	Description  string
	Category     string
	IsCore       bool
	MonthlyPrice decimal.Decimal
	SortOrder    int
}

// DefaultModules devuelve el catálogo canónico de módulos. Es la ÚNICA lista
// autoritativa del sistema: se carga vía Catalog.SeedDefaults al aprovisionar,
// nunca como estado global mutable compartido entre requests.
// Los módulos core tienen precio 0 (incluidos en la suscripción base).
func DefaultModules() []ModuleSeed {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	return []ModuleSeed{
		{Name: entity.ModuleTenderManagement, DisplayName: "Gestión de licitaciones", Description: "Alta, seguimiento y cierre de licitaciones", Category: entity.CategoryCore, IsCore: true, MonthlyPrice: price("0.00"), SortOrder: 10},
		{Name: entity.ModuleDocumentManagement, DisplayName: "Gestión documental", Description: "Documentos asociados a cada licitación", Category: entity.CategoryCore, IsCore: true, MonthlyPrice: price("0.00"), SortOrder: 20},
		{Name: entity.ModuleUserManagement, DisplayName: "Gestión de usuarios", Description: "Usuarios y roles de la empresa", Category: entity.CategoryCore, IsCore: true, MonthlyPrice: price("0.00"), SortOrder: 30},
		{Name: entity.ModuleCompanyManagement, DisplayName: "Gestión de empresa", Description: "Datos y configuración de la empresa", Category: entity.CategoryCore, IsCore: true, MonthlyPrice: price("0.00"), SortOrder: 40},
		{Name: entity.ModuleReporting, DisplayName: "Reportes", Description: "Reportes de actividad y resultados", Category: entity.CategoryFeature, MonthlyPrice: price("299.00"), SortOrder: 50},
		{Name: entity.ModuleNotes, DisplayName: "Notas", Description: "Notas internas sobre licitaciones", Category: entity.CategoryFeature, MonthlyPrice: price("99.00"), SortOrder: 60},
		{Name: entity.ModuleAdvancedSearch, DisplayName: "Búsqueda avanzada", Description: "Filtros y búsqueda de texto completo", Category: entity.CategoryFeature, MonthlyPrice: price("149.00"), SortOrder: 70},
		{Name: entity.ModuleCustomFields, DisplayName: "Campos personalizados", Description: "Campos propios por licitación", Category: entity.CategoryFeature, MonthlyPrice: price("199.00"), SortOrder: 80},
		{Name: entity.ModuleAuditLog, DisplayName: "Auditoría", Description: "Registro de cambios del sistema", Category: entity.CategoryFeature, MonthlyPrice: price("149.00"), SortOrder: 90},
		{Name: entity.ModuleAnalytics, DisplayName: "Analítica", Description: "Tableros y métricas de desempeño", Category: entity.CategoryPremium, MonthlyPrice: price("499.00"), SortOrder: 100},
		{Name: entity.ModuleAPIAccess, DisplayName: "Acceso API", Description: "API pública para integraciones", Category: entity.CategoryPremium, MonthlyPrice: price("399.00"), SortOrder: 110},
	}
}
