package billing_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licitapro/licitaciones-api/internal/application/billing"
	"github.com/licitapro/licitaciones-api/internal/domain"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memModuleRepo struct {
	byName map[string]*entity.ModuleDefinition
}

func newMemModuleRepo() *memModuleRepo {
	return &memModuleRepo{byName: map[string]*entity.ModuleDefinition{}}
}

func (r *memModuleRepo) Create(_ context.Context, def *entity.ModuleDefinition) error {
	cp := *def
	r.byName[def.Name] = &cp
	return nil
}

func (r *memModuleRepo) Update(_ context.Context, def *entity.ModuleDefinition) error {
	cp := *def
	r.byName[def.Name] = &cp
	return nil
}

func (r *memModuleRepo) GetByName(_ context.Context, name string) (*entity.ModuleDefinition, error) {
	def, ok := r.byName[name]
	if !ok {
		return nil, nil
	}
	cp := *def
	return &cp, nil
}

func (r *memModuleRepo) ListActive(_ context.Context) ([]*entity.ModuleDefinition, error) {
	var out []*entity.ModuleDefinition
	for _, def := range r.byName {
		if def.IsActive {
			cp := *def
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *memModuleRepo) ListAll(ctx context.Context) ([]*entity.ModuleDefinition, error) {
	return r.ListActive(ctx)
}

type memPricingRepo struct {
	overrides []*entity.CustomPricingOverride
}

func (r *memPricingRepo) GetActive(_ context.Context, companyID, moduleName string) (*entity.CustomPricingOverride, error) {
	for _, o := range r.overrides {
		if o.IsActive && o.CompanyID == companyID && o.ModuleName == moduleName {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPricingRepo) ListActiveByCompany(_ context.Context, companyID string) ([]*entity.CustomPricingOverride, error) {
	var out []*entity.CustomPricingOverride
	for _, o := range r.overrides {
		if o.IsActive && o.CompanyID == companyID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPricingRepo) ListByPair(_ context.Context, companyID, moduleName string) ([]*entity.CustomPricingOverride, error) {
	var out []*entity.CustomPricingOverride
	for i := len(r.overrides) - 1; i >= 0; i-- {
		o := r.overrides[i]
		if o.CompanyID == companyID && o.ModuleName == moduleName {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPricingRepo) Create(_ context.Context, o *entity.CustomPricingOverride) error {
	cp := *o
	r.overrides = append(r.overrides, &cp)
	return nil
}

func (r *memPricingRepo) DeactivateActive(_ context.Context, companyID, moduleName string) error {
	for _, o := range r.overrides {
		if o.CompanyID == companyID && o.ModuleName == moduleName {
			o.IsActive = false
		}
	}
	return nil
}

// failingPricingRepo envuelve el repo en memoria y falla en la escritura
// indicada, simulando una caída de la DB a mitad de la transacción.
type failingPricingRepo struct {
	*memPricingRepo
	createErr     error
	deactivateErr error
}

func (r *failingPricingRepo) Create(ctx context.Context, o *entity.CustomPricingOverride) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.memPricingRepo.Create(ctx, o)
}

func (r *failingPricingRepo) DeactivateActive(ctx context.Context, companyID, moduleName string) error {
	if r.deactivateErr != nil {
		return r.deactivateErr
	}
	return r.memPricingRepo.DeactivateActive(ctx, companyID, moduleName)
}

// staticLister devuelve una lista fija de módulos activos.
type staticLister struct {
	names []string
}

func (l *staticLister) ListEnabled(context.Context, string) ([]string, error) {
	return l.names, nil
}

type memPricingTx struct {
	modRepo   repository.ModuleRepository
	priceRepo repository.PricingRepository
}

func (t *memPricingTx) RunPricing(_ context.Context, fn func(repository.ModuleRepository, repository.PricingRepository) error) error {
	return fn(t.modRepo, t.priceRepo)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedBillingCatalog(t *testing.T, repo *memModuleRepo) {
	t.Helper()
	mods := []struct {
		name  string
		core  bool
		cat   string
		cost  string
		order int
	}{
		{entity.ModuleTenderManagement, true, entity.CategoryCore, "0.00", 10},
		{entity.ModuleUserManagement, true, entity.CategoryCore, "0.00", 20},
		{entity.ModuleReporting, false, entity.CategoryFeature, "299.00", 50},
		{entity.ModuleNotes, false, entity.CategoryFeature, "99.00", 60},
		{entity.ModuleAnalytics, false, entity.CategoryPremium, "499.00", 100},
	}
	for _, m := range mods {
		require.NoError(t, repo.Create(context.Background(), &entity.ModuleDefinition{
			ID:           uuid.New().String(),
			Name:         m.name,
			Category:     m.cat,
			IsCore:       m.core,
			MonthlyPrice: price(m.cost),
			SortOrder:    m.order,
			IsActive:     true,
		}))
	}
}

func newTestCalculator(t *testing.T, enabled ...string) (*billing.Calculator, *memPricingRepo) {
	t.Helper()
	modRepo := newMemModuleRepo()
	priceRepo := &memPricingRepo{}
	seedBillingCatalog(t, modRepo)
	tx := &memPricingTx{modRepo: modRepo, priceRepo: priceRepo}
	calc := billing.NewCalculator(tx, modRepo, priceRepo, &staticLister{names: enabled}, "USD")
	return calc, priceRepo
}

const (
	testCompany = "11111111-1111-1111-1111-111111111111"
	testActor   = "22222222-2222-2222-2222-222222222222"
)

// ──────────────────────────────────────────────────────────────────────────────
// EffectivePrice
// ──────────────────────────────────────────────────────────────────────────────

func TestEffectivePrice_PrecioDeCatalogo(t *testing.T) {
	calc, _ := newTestCalculator(t)

	p, err := calc.EffectivePrice(context.Background(), testCompany, entity.ModuleReporting)
	require.NoError(t, err)
	assert.True(t, p.Equal(price("299.00")), "sin override aplica el precio de catálogo, got %s", p)
}

func TestEffectivePrice_OverrideGanaAlCatalogo(t *testing.T) {
	calc, _ := newTestCalculator(t)
	ctx := context.Background()

	require.NoError(t, calc.SetCustomPrice(ctx, testCompany, entity.ModuleReporting, price("150.00"), testActor, "precio negociado", nil))

	p, err := calc.EffectivePrice(ctx, testCompany, entity.ModuleReporting)
	require.NoError(t, err)
	assert.True(t, p.Equal(price("150.00")), "el override activo debe ganar al catálogo, got %s", p)
}

func TestEffectivePrice_ModuloDesconocidoEsCero(t *testing.T) {
	calc, _ := newTestCalculator(t)

	p, err := calc.EffectivePrice(context.Background(), testCompany, "no_existe")
	require.NoError(t, err)
	assert.True(t, p.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// MonthlyTotal / Summary
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthlyTotal_SumaSoloModulosActivos(t *testing.T) {
	calc, _ := newTestCalculator(t,
		entity.ModuleTenderManagement, // core, 0
		entity.ModuleReporting,        // 299
		entity.ModuleNotes,            // 99
	)

	total, err := calc.MonthlyTotal(context.Background(), testCompany)
	require.NoError(t, err)
	assert.True(t, total.Equal(price("398.00")), "total esperado 398.00, got %s", total)
}

func TestMonthlyTotal_SinModulosEsCero(t *testing.T) {
	calc, _ := newTestCalculator(t)

	total, err := calc.MonthlyTotal(context.Background(), testCompany)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestMonthlyTotal_ReflejaOverrideInmediatamente(t *testing.T) {
	calc, _ := newTestCalculator(t, entity.ModuleReporting)
	ctx := context.Background()

	require.NoError(t, calc.SetCustomPrice(ctx, testCompany, entity.ModuleReporting, price("150.00"), testActor, "", nil))

	// El total se calcula fresco: no hay caché que invalidar
	total, err := calc.MonthlyTotal(ctx, testCompany)
	require.NoError(t, err)
	assert.True(t, total.Equal(price("150.00")), "got %s", total)
}

func TestSummary_MarcaLineasConOverride(t *testing.T) {
	calc, _ := newTestCalculator(t, entity.ModuleNotes, entity.ModuleReporting)
	ctx := context.Background()

	require.NoError(t, calc.SetCustomPrice(ctx, testCompany, entity.ModuleReporting, price("150.00"), testActor, "", nil))

	lines, total, err := calc.Summary(ctx, testCompany)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, total.Equal(price("249.00")), "got %s", total)

	byName := map[string]billing.Line{}
	for _, l := range lines {
		byName[l.ModuleName] = l
	}
	assert.True(t, byName[entity.ModuleReporting].Overridden)
	assert.False(t, byName[entity.ModuleNotes].Overridden)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetCustomPrice / RemoveCustomPrice
// ──────────────────────────────────────────────────────────────────────────────

func TestSetCustomPrice_PrecioNegativoRechazado(t *testing.T) {
	calc, priceRepo := newTestCalculator(t)

	err := calc.SetCustomPrice(context.Background(), testCompany, entity.ModuleReporting, price("-1.00"), testActor, "", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, priceRepo.overrides, "un precio inválido no debe escribir nada")
}

func TestSetCustomPrice_ModuloDesconocido(t *testing.T) {
	calc, _ := newTestCalculator(t)

	err := calc.SetCustomPrice(context.Background(), testCompany, "no_existe", price("10.00"), testActor, "", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownModule)
}

func TestSetCustomPrice_SegundoOverrideDesactivaElPrimero(t *testing.T) {
	calc, priceRepo := newTestCalculator(t)
	ctx := context.Background()

	require.NoError(t, calc.SetCustomPrice(ctx, testCompany, entity.ModuleReporting, price("150.00"), testActor, "", nil))
	require.NoError(t, calc.SetCustomPrice(ctx, testCompany, entity.ModuleReporting, price("120.00"), testActor, "renegociado", nil))

	// A lo sumo un override activo por par
	active := 0
	for _, o := range priceRepo.overrides {
		if o.IsActive {
			active++
		}
	}
	assert.Equal(t, 1, active, "solo el override más reciente debe quedar activo")

	p, err := calc.EffectivePrice(ctx, testCompany, entity.ModuleReporting)
	require.NoError(t, err)
	assert.True(t, p.Equal(price("120.00")), "got %s", p)

	// El historial se conserva para auditoría
	history, err := priceRepo.ListByPair(ctx, testCompany, entity.ModuleReporting)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSetCustomPrice_CeroEsValido(t *testing.T) {
	calc, _ := newTestCalculator(t)
	ctx := context.Background()

	// Precio 0 = módulo bonificado, distinto de "sin override"
	require.NoError(t, calc.SetCustomPrice(ctx, testCompany, entity.ModuleAnalytics, decimal.Zero, testActor, "cortesía", nil))

	p, err := calc.EffectivePrice(ctx, testCompany, entity.ModuleAnalytics)
	require.NoError(t, err)
	assert.True(t, p.IsZero())
}

func TestRemoveCustomPrice_VuelveAlCatalogo(t *testing.T) {
	calc, _ := newTestCalculator(t)
	ctx := context.Background()

	require.NoError(t, calc.SetCustomPrice(ctx, testCompany, entity.ModuleReporting, price("150.00"), testActor, "", nil))
	require.NoError(t, calc.RemoveCustomPrice(ctx, testCompany, entity.ModuleReporting))

	p, err := calc.EffectivePrice(ctx, testCompany, entity.ModuleReporting)
	require.NoError(t, err)
	assert.True(t, p.Equal(price("299.00")), "al quitar el override vuelve el precio de catálogo, got %s", p)
}

func TestRemoveCustomPrice_SinOverrideNoFalla(t *testing.T) {
	calc, _ := newTestCalculator(t)

	assert.NoError(t, calc.RemoveCustomPrice(context.Background(), testCompany, entity.ModuleReporting))
}

func TestSetCustomPrice_FalloDeInfraEsErrPersistence(t *testing.T) {
	modRepo := newMemModuleRepo()
	priceRepo := &failingPricingRepo{memPricingRepo: &memPricingRepo{}, createErr: errors.New("conexión perdida")}
	seedBillingCatalog(t, modRepo)
	tx := &memPricingTx{modRepo: modRepo, priceRepo: priceRepo}
	calc := billing.NewCalculator(tx, modRepo, priceRepo, &staticLister{}, "USD")

	err := calc.SetCustomPrice(context.Background(), testCompany, entity.ModuleReporting, price("150.00"), testActor, "", nil)
	assert.ErrorIs(t, err, domain.ErrPersistence,
		"un fallo de escritura se reporta como ErrPersistence, no como error de validación")
	assert.NotErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrUnknownModule)
	assert.Empty(t, priceRepo.overrides, "el fallo no debe dejar ningún override escrito")
}

func TestRemoveCustomPrice_FalloDeInfraEsErrPersistence(t *testing.T) {
	modRepo := newMemModuleRepo()
	priceRepo := &failingPricingRepo{memPricingRepo: &memPricingRepo{}, deactivateErr: errors.New("conexión perdida")}
	seedBillingCatalog(t, modRepo)
	tx := &memPricingTx{modRepo: modRepo, priceRepo: priceRepo}
	calc := billing.NewCalculator(tx, modRepo, priceRepo, &staticLister{}, "USD")

	err := calc.RemoveCustomPrice(context.Background(), testCompany, entity.ModuleReporting)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
