package permission_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licitapro/licitaciones-api/internal/application/permission"
	"github.com/licitapro/licitaciones-api/internal/domain"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsers struct {
	byID map[string]*entity.User
	err  error
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

type fakeEnabled struct {
	byCompany map[string][]string
	err       error
}

func (f *fakeEnabled) ListEnabled(_ context.Context, companyID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCompany[companyID], nil
}

const (
	companyA    = "company-a"
	uAdmin      = "user-admin"
	uGestor     = "user-gestor"
	uSuper      = "user-super"
	uInactive   = "user-inactive"
	uSinEmpresa = "user-sin-empresa"
	uRoleMayusc = "user-role-mayusculas"
)

func newTestResolver(enabled []string) *permission.Resolver {
	users := &fakeUsers{byID: map[string]*entity.User{
		uAdmin:      {ID: uAdmin, CompanyID: companyA, Role: entity.RoleAdmin, Status: entity.UserActive},
		uGestor:     {ID: uGestor, CompanyID: companyA, Role: entity.RoleGestor, Status: entity.UserActive},
		uSuper:      {ID: uSuper, IsSuperAdmin: true, Status: entity.UserActive},
		uInactive:   {ID: uInactive, CompanyID: companyA, Role: entity.RoleAdmin, Status: entity.UserInactive},
		uSinEmpresa: {ID: uSinEmpresa, Role: entity.RoleGestor, Status: entity.UserActive},
		uRoleMayusc: {ID: uRoleMayusc, CompanyID: companyA, Role: "Admin", Status: entity.UserActive},
	}}
	lister := &fakeEnabled{byCompany: map[string][]string{companyA: enabled}}
	return permission.NewResolver(users, lister, nil, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolve
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_UsuarioDesconocido(t *testing.T) {
	r := newTestResolver(nil)

	_, err := r.Resolve(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestResolve_UsuarioInactivo(t *testing.T) {
	r := newTestResolver(nil)

	_, err := r.Resolve(context.Background(), uInactive)
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "un usuario inactivo no resuelve permisos")
}

func TestResolve_SinEmpresaAsignada(t *testing.T) {
	r := newTestResolver(nil)

	_, err := r.Resolve(context.Background(), uSinEmpresa)
	assert.ErrorIs(t, err, domain.ErrNoCompanyAssigned)
}

func TestResolve_SuperAdminBypassTotal(t *testing.T) {
	// Super admin sin empresa asignada: igual resuelve, con todos los módulos
	r := newTestResolver(nil)

	ps, err := r.Resolve(context.Background(), uSuper)
	require.NoError(t, err)
	assert.True(t, ps.IsSuperAdmin)
	assert.True(t, ps.AllModules)
	assert.True(t, ps.HasModule(entity.ModuleAnalytics), "super admin ve cualquier módulo")
	assert.True(t, ps.HasModule("modulo_que_no_existe"), "AllModules no consulta el catálogo")
	assert.True(t, ps.Can(entity.CanManageUsers))
	assert.True(t, ps.Can(entity.CanDelete))
}

func TestResolve_AdminDeEmpresa(t *testing.T) {
	r := newTestResolver([]string{entity.ModuleTenderManagement, entity.ModuleUserManagement})

	ps, err := r.Resolve(context.Background(), uAdmin)
	require.NoError(t, err)
	assert.False(t, ps.IsSuperAdmin)
	assert.True(t, ps.IsCompanyAdmin)
	assert.True(t, ps.HasModule(entity.ModuleTenderManagement))
	assert.False(t, ps.HasModule(entity.ModuleAnalytics), "módulo no activo = sin acceso")
	assert.True(t, ps.Can(entity.CanManageUsers), "admin con user_management activo gestiona usuarios")
}

func TestResolve_RolAdminCaseInsensitive(t *testing.T) {
	r := newTestResolver([]string{entity.ModuleUserManagement})

	ps, err := r.Resolve(context.Background(), uRoleMayusc)
	require.NoError(t, err)
	assert.True(t, ps.IsCompanyAdmin, "la comparación de roles admin es case-insensitive")
}

func TestResolve_CapacidadRequiereAdminYModulo(t *testing.T) {
	// gestor con user_management activo: tiene el módulo pero no el rol
	r := newTestResolver([]string{entity.ModuleUserManagement, entity.ModuleTenderManagement})

	ps, err := r.Resolve(context.Background(), uGestor)
	require.NoError(t, err)
	assert.True(t, ps.HasModule(entity.ModuleUserManagement))
	assert.False(t, ps.Can(entity.CanManageUsers), "gestionar usuarios exige rol admin además del módulo")
	assert.True(t, ps.Can(entity.CanDelete), "can_delete solo exige el módulo tender_management")
}

func TestResolve_CapacidadSinModuloEsFalse(t *testing.T) {
	// admin sin el módulo analytics: el rol no alcanza sin el módulo
	r := newTestResolver([]string{entity.ModuleTenderManagement})

	ps, err := r.Resolve(context.Background(), uAdmin)
	require.NoError(t, err)
	assert.False(t, ps.Can(entity.CanViewAnalytics))
}

func TestResolve_RolesAdminConfigurables(t *testing.T) {
	users := &fakeUsers{byID: map[string]*entity.User{
		"u1": {ID: "u1", CompanyID: companyA, Role: "owner", Status: entity.UserActive},
	}}
	lister := &fakeEnabled{byCompany: map[string][]string{companyA: {entity.ModuleUserManagement}}}
	r := permission.NewResolver(users, lister, []string{"OWNER"}, nil)

	ps, err := r.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ps.IsCompanyAdmin, "los roles admin vienen de configuración, normalizados a minúsculas")
}

// ──────────────────────────────────────────────────────────────────────────────
// HasModuleAccess — siempre falla cerrado
// ──────────────────────────────────────────────────────────────────────────────

func TestHasModuleAccess_UsuarioIrresolubleEsFalse(t *testing.T) {
	r := newTestResolver([]string{entity.ModuleTenderManagement})

	assert.False(t, r.HasModuleAccess(context.Background(), "no-existe", entity.ModuleTenderManagement))
}

func TestHasModuleAccess_FalloDeLecturaEsFalse(t *testing.T) {
	users := &fakeUsers{byID: map[string]*entity.User{
		uGestor: {ID: uGestor, CompanyID: companyA, Role: entity.RoleGestor, Status: entity.UserActive},
	}}
	lister := &fakeEnabled{err: errors.New("conexión perdida")}
	r := permission.NewResolver(users, lister, nil, nil)

	assert.False(t, r.HasModuleAccess(context.Background(), uGestor, entity.ModuleTenderManagement),
		"un fallo de infraestructura jamás se traduce en acceso permitido")
}
