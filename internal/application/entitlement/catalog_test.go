package entitlement_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licitapro/licitaciones-api/internal/application/entitlement"
	"github.com/licitapro/licitaciones-api/internal/domain"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
)

func TestSeedDefaults_InsertaCatalogoCompleto(t *testing.T) {
	repo := newMemModuleRepo()
	catalog := entitlement.NewCatalog(repo)
	ctx := context.Background()

	require.NoError(t, catalog.SeedDefaults(ctx, entitlement.DefaultModules()))

	defs, err := catalog.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, defs, len(entitlement.DefaultModules()))

	// Orden estable por sort_order
	for i := 1; i < len(defs); i++ {
		assert.LessOrEqual(t, defs[i-1].SortOrder, defs[i].SortOrder)
	}
}

func TestSeedDefaults_IdempotentePreservaIDeIsActive(t *testing.T) {
	repo := newMemModuleRepo()
	catalog := entitlement.NewCatalog(repo)
	ctx := context.Background()

	require.NoError(t, catalog.SeedDefaults(ctx, entitlement.DefaultModules()))

	before, err := catalog.GetByName(ctx, entity.ModuleReporting)
	require.NoError(t, err)

	// Retirar el módulo del catálogo comercial y volver a sembrar
	before.IsActive = false
	require.NoError(t, repo.Update(ctx, before))
	require.NoError(t, catalog.SeedDefaults(ctx, entitlement.DefaultModules()))

	after, err := catalog.GetByName(ctx, entity.ModuleReporting)
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID, "re-sembrar no debe cambiar el ID")
	assert.False(t, after.IsActive, "re-sembrar no debe resucitar un módulo retirado")
}

func TestSeedDefaults_ActualizaCamposMutables(t *testing.T) {
	repo := newMemModuleRepo()
	catalog := entitlement.NewCatalog(repo)
	ctx := context.Background()

	require.NoError(t, catalog.SeedDefaults(ctx, entitlement.DefaultModules()))

	// Simular un precio viejo en DB; el seed debe corregirlo
	def, err := catalog.GetByName(ctx, entity.ModuleAnalytics)
	require.NoError(t, err)
	def.MonthlyPrice = decimal.NewFromInt(1)
	require.NoError(t, repo.Update(ctx, def))

	require.NoError(t, catalog.SeedDefaults(ctx, entitlement.DefaultModules()))

	fresh, err := catalog.GetByName(ctx, entity.ModuleAnalytics)
	require.NoError(t, err)
	var want decimal.Decimal
	for _, s := range entitlement.DefaultModules() {
		if s.Name == entity.ModuleAnalytics {
			want = s.MonthlyPrice
		}
	}
	assert.True(t, fresh.MonthlyPrice.Equal(want), "el seed debe actualizar el precio de catálogo")
}

func TestGetByName_DesconocidoEsError(t *testing.T) {
	repo := newMemModuleRepo()
	catalog := entitlement.NewCatalog(repo)

	_, err := catalog.GetByName(context.Background(), "no_existe")
	assert.ErrorIs(t, err, domain.ErrUnknownModule)
}
