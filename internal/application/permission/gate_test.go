package permission_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licitapro/licitaciones-api/internal/application/permission"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// CheckModule / CheckCompanyAdmin — evaluación pura sobre un set ya resuelto
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckModule_Permitido(t *testing.T) {
	ps := entity.PermissionSet{EnabledModules: map[string]bool{entity.ModuleReporting: true}}
	assert.Nil(t, permission.CheckModule(ps, entity.ModuleReporting))
}

func TestCheckModule_Denegado(t *testing.T) {
	ps := entity.PermissionSet{EnabledModules: map[string]bool{}}
	d := permission.CheckModule(ps, entity.ModuleReporting)
	require.NotNil(t, d)
	assert.Equal(t, permission.ReasonModuleNotEnabled, d.Reason)
	assert.Equal(t, entity.ModuleReporting, d.Module, "la denegación identifica el módulo faltante")
}

func TestCheckModule_AllModules(t *testing.T) {
	ps := entity.PermissionSet{AllModules: true}
	assert.Nil(t, permission.CheckModule(ps, "cualquier_modulo"))
}

func TestCheckCompanyAdmin(t *testing.T) {
	assert.Nil(t, permission.CheckCompanyAdmin(entity.PermissionSet{IsCompanyAdmin: true}))
	assert.Nil(t, permission.CheckCompanyAdmin(entity.PermissionSet{IsSuperAdmin: true}))

	d := permission.CheckCompanyAdmin(entity.PermissionSet{})
	require.NotNil(t, d)
	assert.Equal(t, permission.ReasonAdminRequired, d.Reason)
}

func TestChecksApilados_UnSoloSetResuelto(t *testing.T) {
	// Varios gates sobre el mismo request comparten el PermissionSet: resolver
	// una vez y evaluar N veces.
	ps := entity.PermissionSet{
		IsCompanyAdmin: true,
		EnabledModules: map[string]bool{entity.ModuleTenderManagement: true},
	}
	assert.Nil(t, permission.CheckModule(ps, entity.ModuleTenderManagement))
	assert.Nil(t, permission.CheckCompanyAdmin(ps))
	assert.NotNil(t, permission.CheckModule(ps, entity.ModuleAnalytics))
}

// ──────────────────────────────────────────────────────────────────────────────
// Gate — envuelve operaciones con resolve + check
// ──────────────────────────────────────────────────────────────────────────────

func TestGate_RequireModule_EjecutaOp(t *testing.T) {
	gate := permission.NewGate(newTestResolver([]string{entity.ModuleReporting}))

	ran := false
	d, err := gate.RequireModule(context.Background(), uGestor, entity.ModuleReporting, func(context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.True(t, ran)
}

func TestGate_RequireModule_DeniegaSinEjecutar(t *testing.T) {
	gate := permission.NewGate(newTestResolver(nil))

	ran := false
	d, err := gate.RequireModule(context.Background(), uGestor, entity.ModuleReporting, func(context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, permission.ReasonModuleNotEnabled, d.Reason)
	assert.False(t, ran, "la operación protegida no debe ejecutarse al denegar")
}

func TestGate_RequireModule_UsuarioIrresolubleDeniega(t *testing.T) {
	gate := permission.NewGate(newTestResolver([]string{entity.ModuleReporting}))

	d, err := gate.RequireModule(context.Background(), "no-existe", entity.ModuleReporting, func(context.Context) error {
		t.Fatal("no debe ejecutarse")
		return nil
	})
	require.NoError(t, err)
	assert.NotNil(t, d, "usuario irresoluble = denegado, nunca permitido")
}

func TestGate_RequireCompanyAdmin(t *testing.T) {
	gate := permission.NewGate(newTestResolver([]string{entity.ModuleUserManagement}))

	// admin pasa
	d, err := gate.RequireCompanyAdmin(context.Background(), uAdmin, func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Nil(t, d)

	// gestor no
	d, err = gate.RequireCompanyAdmin(context.Background(), uGestor, func(context.Context) error {
		t.Fatal("no debe ejecutarse")
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, permission.ReasonAdminRequired, d.Reason)
}

func TestGate_PropagaErrorDeOp(t *testing.T) {
	gate := permission.NewGate(newTestResolver([]string{entity.ModuleReporting}))

	opErr := assert.AnError
	d, err := gate.RequireModule(context.Background(), uGestor, entity.ModuleReporting, func(context.Context) error {
		return opErr
	})
	assert.Nil(t, d)
	assert.ErrorIs(t, err, opErr, "el error de la operación se devuelve tal cual")
}
