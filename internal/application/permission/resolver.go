package permission

import (
	"context"
	"fmt"
	"strings"

	"github.com/licitapro/licitaciones-api/internal/domain"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
)

// userGetter es el contrato mínimo que necesita el resolver sobre usuarios.
// Lo implementa repository.UserRepository.
type userGetter interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// enabledLister es el contrato mínimo sobre el store de entitlements.
// Lo implementa *entitlement.Store.
type enabledLister interface {
	ListEnabled(ctx context.Context, companyID string) ([]string, error)
}

// Resolver es el ÚNICO punto que convierte {usuario, empresa} en una vista de
// permisos consistente y reutilizable. Ningún call site deriva booleanos por
// su cuenta: todos consumen el PermissionSet que sale de aquí.
type Resolver struct {
	users      userGetter
	enabled    enabledLister
	adminRoles map[string]bool // nombres de rol admin, normalizados a minúsculas una sola vez
	rules      []CapabilityRule
}

// NewResolver construye el resolver. adminRoles y rules vienen de configuración;
// si están vacíos se usan los defaults.
func NewResolver(users userGetter, enabled enabledLister, adminRoles []string, rules []CapabilityRule) *Resolver {
	if len(adminRoles) == 0 {
		adminRoles = DefaultAdminRoles()
	}
	if len(rules) == 0 {
		rules = DefaultCapabilityRules()
	}
	normalized := make(map[string]bool, len(adminRoles))
	for _, r := range adminRoles {
		normalized[strings.ToLower(strings.TrimSpace(r))] = true
	}
	return &Resolver{users: users, enabled: enabled, adminRoles: normalized, rules: rules}
}

// Resolve calcula el PermissionSet efectivo del usuario.
//   - domain.ErrUserNotFound si el ID no corresponde a un usuario activo.
//   - Super admin: bypass incondicional, se evalúa primero; todo true aunque
//     no tenga empresa.
//   - domain.ErrNoCompanyAssigned si un usuario normal no tiene empresa.
//   - La comparación de rol admin es case-insensitive, normalizada una sola vez.
func (r *Resolver) Resolve(ctx context.Context, userID string) (entity.PermissionSet, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return entity.PermissionSet{}, fmt.Errorf("buscar usuario %s: %w", userID, err)
	}
	if user == nil || user.Status != entity.UserActive {
		return entity.PermissionSet{}, domain.ErrUserNotFound
	}

	if user.IsSuperAdmin {
		caps := make(map[string]bool, len(r.rules))
		for _, rule := range r.rules {
			caps[rule.Capability] = true
		}
		return entity.PermissionSet{
			UserID:         user.ID,
			CompanyID:      user.CompanyID,
			IsSuperAdmin:   true,
			IsCompanyAdmin: true,
			AllModules:     true,
			EnabledModules: map[string]bool{},
			Capabilities:   caps,
		}, nil
	}

	if user.CompanyID == "" {
		return entity.PermissionSet{}, domain.ErrNoCompanyAssigned
	}

	isAdmin := r.adminRoles[strings.ToLower(user.Role)]

	names, err := r.enabled.ListEnabled(ctx, user.CompanyID)
	if err != nil {
		return entity.PermissionSet{}, fmt.Errorf("listar módulos de %s: %w", user.CompanyID, err)
	}
	modules := make(map[string]bool, len(names))
	for _, n := range names {
		modules[n] = true
	}

	caps := make(map[string]bool, len(r.rules))
	for _, rule := range r.rules {
		caps[rule.Capability] = modules[rule.Module] && (!rule.RequiresAdmin || isAdmin)
	}

	return entity.PermissionSet{
		UserID:         user.ID,
		CompanyID:      user.CompanyID,
		IsCompanyAdmin: isAdmin,
		EnabledModules: modules,
		Capabilities:   caps,
	}, nil
}

// HasModuleAccess informa si el usuario puede usar el módulo. Nunca devuelve
// error: usuario irresoluble o fallo de lectura = false (falla cerrado, un
// estado indeterminado jamás se traduce en "permitido").
func (r *Resolver) HasModuleAccess(ctx context.Context, userID, moduleName string) bool {
	ps, err := r.Resolve(ctx, userID)
	if err != nil {
		return false
	}
	return ps.HasModule(moduleName)
}
