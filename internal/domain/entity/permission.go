package entity

// Capacidades derivadas que expone un PermissionSet. La lista es fija;
// la regla (módulo requerido, si exige admin) es data configurable en permission.
const (
	CanDelete             = "can_delete"
	CanManageUsers        = "can_manage_users"
	CanViewAnalytics      = "can_view_analytics"
	CanUseAPI             = "can_use_api"
	CanUploadDocuments    = "can_upload_documents"
	CanCreateCustomFields = "can_create_custom_fields"
	CanAddNotes           = "can_add_notes"
	CanViewAuditLog       = "can_view_audit_log"
	CanAdvancedSearch     = "can_advanced_search"
	CanManageCompany      = "can_manage_company"
)

// PermissionSet es la vista de permisos efectivos de un usuario, derivada por
// permission.Resolver a partir de {usuario, empresa}. No se persiste: se calcula
// por request y se reutiliza entre gates para no resolver dos veces.
type PermissionSet struct {
	UserID         string
	CompanyID      string
	IsSuperAdmin   bool
	IsCompanyAdmin bool
	AllModules     bool            // centinela "todos": super admin
	EnabledModules map[string]bool // módulos activos de la empresa
	Capabilities   map[string]bool // ver constantes Can*
}

// HasModule informa si el set da acceso al módulo. AllModules (super admin) corta primero.
func (p PermissionSet) HasModule(name string) bool {
	if p.AllModules {
		return true
	}
	return p.EnabledModules[name]
}

// Can informa si la capacidad derivada está concedida. Capacidad desconocida = false.
func (p PermissionSet) Can(capability string) bool {
	return p.Capabilities[capability]
}
