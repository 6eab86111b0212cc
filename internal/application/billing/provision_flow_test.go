package billing_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licitapro/licitaciones-api/internal/application/billing"
	"github.com/licitapro/licitaciones-api/internal/application/entitlement"
	"github.com/licitapro/licitaciones-api/internal/application/permission"
	"github.com/licitapro/licitaciones-api/internal/domain"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

// Fakes adicionales para el flujo completo store → calculator.

type memEntRepo struct {
	rows map[string]*entity.CompanyModuleEntitlement
}

func newMemEntRepo() *memEntRepo {
	return &memEntRepo{rows: map[string]*entity.CompanyModuleEntitlement{}}
}

func (r *memEntRepo) key(companyID, moduleName string) string { return companyID + "/" + moduleName }

func (r *memEntRepo) GetByCompanyAndModule(_ context.Context, companyID, moduleName string) (*entity.CompanyModuleEntitlement, error) {
	row, ok := r.rows[r.key(companyID, moduleName)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *memEntRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.CompanyModuleEntitlement, error) {
	var out []*entity.CompanyModuleEntitlement
	for _, row := range r.rows {
		if row.CompanyID == companyID {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memEntRepo) ListEnabledNames(_ context.Context, companyID string) ([]string, error) {
	var out []string
	for _, row := range r.rows {
		if row.CompanyID == companyID && row.IsEnabled {
			out = append(out, row.ModuleName)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *memEntRepo) Create(_ context.Context, e *entity.CompanyModuleEntitlement) error {
	cp := *e
	r.rows[r.key(e.CompanyID, e.ModuleName)] = &cp
	return nil
}

func (r *memEntRepo) Update(_ context.Context, e *entity.CompanyModuleEntitlement) error {
	cp := *e
	r.rows[r.key(e.CompanyID, e.ModuleName)] = &cp
	return nil
}

type staticUsers struct {
	byID map[string]*entity.User
}

func (s *staticUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return s.byID[id], nil
}

type memEntTx struct {
	modRepo repository.ModuleRepository
	entRepo repository.EntitlementRepository
}

func (t *memEntTx) Run(_ context.Context, fn func(repository.ModuleRepository, repository.EntitlementRepository) error) error {
	return fn(t.modRepo, t.entRepo)
}

// TestFlujoCompleto_AltaDeEmpresa recorre el ciclo de vida comercial de una
// empresa nueva: aprovisionamiento, contratación de un módulo de pago, precio
// negociado y baja del módulo, verificando el cargo mensual en cada paso.
func TestFlujoCompleto_AltaDeEmpresa(t *testing.T) {
	ctx := context.Background()
	const acme = "acme-co"

	modRepo := newMemModuleRepo()
	entRepo := newMemEntRepo()
	priceRepo := &memPricingRepo{}

	// Catálogo real de producción
	catalog := entitlement.NewCatalog(modRepo)
	require.NoError(t, catalog.SeedDefaults(ctx, entitlement.DefaultModules()))

	store := entitlement.NewStore(&memEntTx{modRepo: modRepo, entRepo: entRepo}, modRepo, entRepo)
	calc := billing.NewCalculator(&memPricingTx{modRepo: modRepo, priceRepo: priceRepo}, modRepo, priceRepo, store, "USD")

	const acmeUser = "acme-user"
	resolver := permission.NewResolver(&staticUsers{byID: map[string]*entity.User{
		acmeUser: {ID: acmeUser, CompanyID: acme, Role: entity.RoleGestor, Status: entity.UserActive},
	}}, store, nil, nil)

	// 1. Aprovisionamiento sin premium: solo core (gratis) + feature
	require.NoError(t, store.BulkSetup(ctx, acme, false, testActor))

	// Desactivar los feature de pago que Acme no contrató todavía
	for _, name := range []string{entity.ModuleReporting, entity.ModuleNotes, entity.ModuleAdvancedSearch, entity.ModuleCustomFields, entity.ModuleAuditLog} {
		require.NoError(t, store.SetEnabled(ctx, acme, name, false, testActor, ""))
	}
	total, err := calc.MonthlyTotal(ctx, acme)
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "solo core activo = cargo 0, got %s", total)

	// 2. Contrata reporting: 299.00 de catálogo
	require.NoError(t, store.SetEnabled(ctx, acme, entity.ModuleReporting, true, testActor, "contrato anual"))
	total, err = calc.MonthlyTotal(ctx, acme)
	require.NoError(t, err)
	assert.True(t, total.Equal(price("299.00")), "got %s", total)

	// 3. Negocia un precio: override a 150.00
	require.NoError(t, calc.SetCustomPrice(ctx, acme, entity.ModuleReporting, price("150.00"), testActor, "descuento anual", nil))
	total, err = calc.MonthlyTotal(ctx, acme)
	require.NoError(t, err)
	assert.True(t, total.Equal(price("150.00")), "got %s", total)

	// 4. Da de baja reporting: el cargo vuelve a 0, el override queda latente
	// y los usuarios de la empresa pierden el acceso al módulo de inmediato
	require.NoError(t, store.SetEnabled(ctx, acme, entity.ModuleReporting, false, testActor, ""))
	total, err = calc.MonthlyTotal(ctx, acme)
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "módulo desactivado no factura aunque tenga override, got %s", total)
	assert.False(t, resolver.HasModuleAccess(ctx, acmeUser, entity.ModuleReporting))
	assert.True(t, resolver.HasModuleAccess(ctx, acmeUser, entity.ModuleTenderManagement),
		"los core siguen accesibles")

	// 5. Los core siguen intocables durante todo el flujo
	err = store.SetEnabled(ctx, acme, entity.ModuleTenderManagement, false, testActor, "")
	assert.ErrorIs(t, err, domain.ErrCoreModule)

	// 6. Re-contrata reporting: el override negociado sigue vigente
	require.NoError(t, store.SetEnabled(ctx, acme, entity.ModuleReporting, true, testActor, ""))
	total, err = calc.MonthlyTotal(ctx, acme)
	require.NoError(t, err)
	assert.True(t, total.Equal(price("150.00")), "al reactivar aplica el override vigente, got %s", total)
}
