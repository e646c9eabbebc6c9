package quota_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/internal/domain/quota"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de conteo
// ──────────────────────────────────────────────────────────────────────────────

type fakeOfferCounter struct {
	active   int
	featured int
	err      error

	gotExclude string
}

func (f *fakeOfferCounter) CountActiveByLocation(_ context.Context, _, excludeOfferID string) (int, error) {
	f.gotExclude = excludeOfferID
	return f.active, f.err
}

func (f *fakeOfferCounter) CountActiveFeaturedByCompany(_ context.Context, _ string, _ time.Time) (int, error) {
	return f.featured, f.err
}

type fakeLocationCounter struct {
	count int
	err   error
}

func (f *fakeLocationCounter) CountActiveByCompany(_ context.Context, _ string) (int, error) {
	return f.count, f.err
}

func basicCompany() *entity.Company {
	return &entity.Company{ID: "c1", Plan: entity.PlanBasic}
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckActiveOffers
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckActiveOffers_BajoElTopePermite(t *testing.T) {
	e := quota.NewEngine(quota.DefaultLimits())
	counts := &fakeOfferCounter{active: 3}

	err := e.CheckActiveOffers(context.Background(), counts, basicCompany(), "loc1", "")
	assert.NoError(t, err, "con 3 de 4 debe permitir la cuarta")
}

func TestCheckActiveOffers_EnElTopeDeniega(t *testing.T) {
	e := quota.NewEngine(quota.DefaultLimits())
	counts := &fakeOfferCounter{active: 4}

	err := e.CheckActiveOffers(context.Background(), counts, basicCompany(), "loc1", "")
	require.Error(t, err)

	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindQuotaOfferActive, de.Kind)
	assert.Equal(t, 4, de.Fields["ceiling"], "el error lleva el tope del plan")
	assert.Equal(t, "basic", de.Fields["plan"], "el error lleva el plan")
}

func TestCheckActiveOffers_PremiumPermiteMas(t *testing.T) {
	e := quota.NewEngine(quota.DefaultLimits())
	company := &entity.Company{ID: "c1", Plan: entity.PlanPremium}

	assert.NoError(t, e.CheckActiveOffers(context.Background(), &fakeOfferCounter{active: 19}, company, "loc1", ""))
	assert.Error(t, e.CheckActiveOffers(context.Background(), &fakeOfferCounter{active: 20}, company, "loc1", ""))
}

func TestCheckActiveOffers_PlanDesconocidoUsaTopeBasic(t *testing.T) {
	e := quota.NewEngine(quota.DefaultLimits())
	company := &entity.Company{ID: "c1", Plan: entity.Plan("gold")}

	err := e.CheckActiveOffers(context.Background(), &fakeOfferCounter{active: 4}, company, "loc1", "")
	assert.True(t, domain.IsKind(err, domain.KindQuotaOfferActive),
		"ante plan corrupto se aplica el tope más restrictivo")
}

func TestCheckActiveOffers_PropagaExcludeAlConteo(t *testing.T) {
	e := quota.NewEngine(quota.DefaultLimits())
	counts := &fakeOfferCounter{active: 3}

	require.NoError(t, e.CheckActiveOffers(context.Background(), counts, basicCompany(), "loc1", "offer-99"))
	assert.Equal(t, "offer-99", counts.gotExclude,
		"al reactivar, la propia oferta se excluye del conteo")
}

func TestCheckActiveOffers_FalloDeConteoEsDependency(t *testing.T) {
	e := quota.NewEngine(quota.DefaultLimits())
	counts := &fakeOfferCounter{err: errors.New("db caída")}

	err := e.CheckActiveOffers(context.Background(), counts, basicCompany(), "loc1", "")
	assert.True(t, domain.IsKind(err, domain.KindDependency),
		"un conteo fallido nunca se trata como cupo disponible")
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckFeaturedOffers
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckFeaturedOffers_TopesPorPlan(t *testing.T) {
	e := quota.NewEngine(quota.DefaultLimits())
	cases := []struct {
		plan    entity.Plan
		ceiling int
	}{
		{entity.PlanBasic, 1},
		{entity.PlanPremium, 2},
		{entity.PlanEnterprise, 10},
	}
	for _, tc := range cases {
		company := &entity.Company{ID: "c1", Plan: tc.plan}
		assert.NoError(t,
			e.CheckFeaturedOffers(context.Background(), &fakeOfferCounter{featured: tc.ceiling - 1}, company),
			"plan %s bajo el tope", tc.plan)

		err := e.CheckFeaturedOffers(context.Background(), &fakeOfferCounter{featured: tc.ceiling}, company)
		assert.True(t, domain.IsKind(err, domain.KindQuotaOfferFeatured), "plan %s en el tope", tc.plan)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckLocations — custom_branch_limit sobrescribe el plan
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckLocations_TopePorPlan(t *testing.T) {
	e := quota.NewEngine(quota.DefaultLimits())

	assert.NoError(t, e.CheckLocations(context.Background(), &fakeLocationCounter{count: 2}, basicCompany()))

	err := e.CheckLocations(context.Background(), &fakeLocationCounter{count: 3}, basicCompany())
	assert.True(t, domain.IsKind(err, domain.KindQuotaLocation), "basic permite 3 locales")
}

func TestCheckLocations_CustomBranchLimitSobrescribe(t *testing.T) {
	e := quota.NewEngine(quota.DefaultLimits())
	limit := 7
	company := &entity.Company{ID: "c1", Plan: entity.PlanBasic, CustomBranchLimit: &limit}

	assert.NoError(t, e.CheckLocations(context.Background(), &fakeLocationCounter{count: 6}, company),
		"custom_branch_limit amplía el tope de basic")

	err := e.CheckLocations(context.Background(), &fakeLocationCounter{count: 7}, company)
	require.Error(t, err)
	de, _ := domain.AsError(err)
	assert.Equal(t, 7, de.Fields["ceiling"], "el tope reportado es el custom, no el del plan")
}

func TestCheckLocations_CustomLimitNoAfectaOtrasCuotas(t *testing.T) {
	e := quota.NewEngine(quota.DefaultLimits())
	limit := 50
	company := &entity.Company{ID: "c1", Plan: entity.PlanBasic, CustomBranchLimit: &limit}

	// El override es SOLO de locales: las ofertas siguen con el tope de basic.
	err := e.CheckActiveOffers(context.Background(), &fakeOfferCounter{active: 4}, company, "loc1", "")
	assert.True(t, domain.IsKind(err, domain.KindQuotaOfferActive))
}
