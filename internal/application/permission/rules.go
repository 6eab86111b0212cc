package permission

import "github.com/licitapro/licitaciones-api/internal/domain/entity"

// CapabilityRule define cómo se deriva una capacidad: el módulo que la empresa
// debe tener activo y si además exige rol de administrador de empresa.
// Es data, no código: el mapeo se inyecta al construir el Resolver para que
// ningún call site redefina su propia versión.
type CapabilityRule struct {
	Capability    string
	Module        string
	RequiresAdmin bool
}

// DefaultCapabilityRules devuelve el mapeo por defecto capacidad → (módulo, admin).
// Las capacidades administrativas (gestión de usuarios/empresa, campos
// personalizados, auditoría) exigen rol admin además del módulo.
func DefaultCapabilityRules() []CapabilityRule {
	return []CapabilityRule{
		{Capability: entity.CanDelete, Module: entity.ModuleTenderManagement},
		{Capability: entity.CanManageUsers, Module: entity.ModuleUserManagement, RequiresAdmin: true},
		{Capability: entity.CanViewAnalytics, Module: entity.ModuleAnalytics},
		{Capability: entity.CanUseAPI, Module: entity.ModuleAPIAccess},
		{Capability: entity.CanUploadDocuments, Module: entity.ModuleDocumentManagement},
		{Capability: entity.CanCreateCustomFields, Module: entity.ModuleCustomFields, RequiresAdmin: true},
		{Capability: entity.CanAddNotes, Module: entity.ModuleNotes},
		{Capability: entity.CanViewAuditLog, Module: entity.ModuleAuditLog, RequiresAdmin: true},
		{Capability: entity.CanAdvancedSearch, Module: entity.ModuleAdvancedSearch},
		{Capability: entity.CanManageCompany, Module: entity.ModuleCompanyManagement, RequiresAdmin: true},
	}
}

// DefaultAdminRoles son los nombres de rol equivalentes a "administrador de
// empresa" si la configuración no define ADMIN_ROLES.
func DefaultAdminRoles() []string {
	return []string{"admin", "company_admin", "administrador"}
}
