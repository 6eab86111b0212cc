package permission

import (
	"context"

	"github.com/licitapro/licitaciones-api/internal/domain/entity"
)

// Códigos de denegación legibles por máquina. La capa web los traduce a su
// propia convención (JSON 403, redirect, etc.); el motor no conoce HTTP.
const (
	ReasonModuleNotEnabled = "module_not_enabled"
	ReasonAdminRequired    = "admin_required"
	ReasonCoreModule       = "core_module"
)

// Denied describe una denegación de acceso con su razón y, si aplica, el módulo.
type Denied struct {
	Reason string
	Module string
}

// Gate es el punto uniforme de enforcement: envuelve una operación protegida y
// la ejecuta solo si el PermissionSet lo permite. No tiene efectos propios.
type Gate struct {
	resolver *Resolver
}

// NewGate construye el gate sobre el resolver.
func NewGate(resolver *Resolver) *Gate {
	return &Gate{resolver: resolver}
}

// CheckModule evalúa un PermissionSet ya resuelto contra un módulo. Permite
// apilar varios gates sobre el mismo request sin re-resolver permisos.
func CheckModule(ps entity.PermissionSet, moduleName string) *Denied {
	if ps.HasModule(moduleName) {
		return nil
	}
	return &Denied{Reason: ReasonModuleNotEnabled, Module: moduleName}
}

// CheckCompanyAdmin evalúa un PermissionSet ya resuelto contra el requisito de
// administrador (super admin o admin de empresa).
func CheckCompanyAdmin(ps entity.PermissionSet) *Denied {
	if ps.IsSuperAdmin || ps.IsCompanyAdmin {
		return nil
	}
	return &Denied{Reason: ReasonAdminRequired}
}

// RequireModule ejecuta op solo si el usuario tiene acceso al módulo.
// Devuelve la denegación (sin ejecutar op) o el error de op tal cual.
// Usuario irresoluble = denegado (falla cerrado).
func (g *Gate) RequireModule(ctx context.Context, userID, moduleName string, op func(ctx context.Context) error) (*Denied, error) {
	ps, err := g.resolver.Resolve(ctx, userID)
	if err != nil {
		return &Denied{Reason: ReasonModuleNotEnabled, Module: moduleName}, nil
	}
	if d := CheckModule(ps, moduleName); d != nil {
		return d, nil
	}
	return nil, op(ctx)
}

// RequireCompanyAdmin ejecuta op solo si el usuario es super admin o admin de
// su empresa.
func (g *Gate) RequireCompanyAdmin(ctx context.Context, userID string, op func(ctx context.Context) error) (*Denied, error) {
	ps, err := g.resolver.Resolve(ctx, userID)
	if err != nil {
		return &Denied{Reason: ReasonAdminRequired}, nil
	}
	if d := CheckCompanyAdmin(ps); d != nil {
		return d, nil
	}
	return nil, op(ctx)
}
