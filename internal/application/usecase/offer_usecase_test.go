package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ofertas-pro/internal/application/dto"
	"github.com/tu-usuario/ofertas-pro/internal/application/usecase"
	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/internal/domain/offerfeed"
	"github.com/tu-usuario/ofertas-pro/internal/domain/quota"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (f *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := f.companies[id]
	if !ok || !c.Active {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCompanyRepo) GetBySlug(_ context.Context, slug string) (*entity.Company, error) {
	for _, c := range f.companies {
		if c.Slug == slug && c.Active {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) List(_ context.Context, _ access.Filter, _ bool, _, _ int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range f.companies {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCompanyRepo) SoftDelete(_ context.Context, id string) (bool, error) {
	c, ok := f.companies[id]
	if !ok || !c.Active {
		return false, nil
	}
	c.Active = false
	return true, nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func (f *fakeLocationRepo) Create(_ context.Context, l *entity.Location) error {
	f.locations[l.ID] = l
	return nil
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	l, ok := f.locations[id]
	if !ok || !l.Active {
		return nil, nil
	}
	return l, nil
}

func (f *fakeLocationRepo) Update(_ context.Context, l *entity.Location) error {
	f.locations[l.ID] = l
	return nil
}

func (f *fakeLocationRepo) List(_ context.Context, scope access.Filter) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range f.locations {
		if !l.Active {
			continue
		}
		if scope.CompanyID != "" && l.CompanyID != scope.CompanyID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLocationRepo) SoftDelete(_ context.Context, id string) (bool, error) {
	l, ok := f.locations[id]
	if !ok || !l.Active {
		return false, nil
	}
	l.Active = false
	return true, nil
}

func (f *fakeLocationRepo) CountActiveByCompany(_ context.Context, companyID string) (int, error) {
	n := 0
	for _, l := range f.locations {
		if l.Active && l.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

type fakeOfferRepo struct {
	offers    map[string]*entity.Offer
	locations *fakeLocationRepo
	createErr error
}

func (f *fakeOfferRepo) Create(_ context.Context, o *entity.Offer) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *o
	f.offers[o.ID] = &cp
	return nil
}

func (f *fakeOfferRepo) GetByID(_ context.Context, id string) (*entity.Offer, error) {
	o, ok := f.offers[id]
	if !ok || !o.SoftActive {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOfferRepo) Update(_ context.Context, o *entity.Offer) error {
	cp := *o
	f.offers[o.ID] = &cp
	return nil
}

func (f *fakeOfferRepo) List(_ context.Context, filter repository.OfferListFilter) ([]*entity.Offer, error) {
	var out []*entity.Offer
	for _, o := range f.offers {
		if !o.SoftActive {
			continue
		}
		loc := f.locations.locations[o.LocationID]
		if loc == nil || !loc.Active {
			continue
		}
		if filter.Scope.CompanyID != "" && loc.CompanyID != filter.Scope.CompanyID {
			continue
		}
		if filter.Scope.LocationID != "" && o.LocationID != filter.Scope.LocationID {
			continue
		}
		if filter.CategoryID != "" && o.CategoryID != filter.CategoryID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOfferRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Offer, error) {
	var out []*entity.Offer
	for _, o := range f.offers {
		if !o.SoftActive || o.Status != entity.OfferStatusActive {
			continue
		}
		loc := f.locations.locations[o.LocationID]
		if loc == nil || !loc.Active || loc.CompanyID != companyID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOfferRepo) SoftDelete(_ context.Context, id string) (bool, error) {
	o, ok := f.offers[id]
	if !ok || !o.SoftActive {
		return false, nil
	}
	o.SoftActive = false
	return true, nil
}

func (f *fakeOfferRepo) CountActiveByLocation(_ context.Context, locationID, excludeOfferID string) (int, error) {
	n := 0
	for _, o := range f.offers {
		if o.LocationID == locationID && o.SoftActive && o.Status == entity.OfferStatusActive && o.ID != excludeOfferID {
			n++
		}
	}
	return n, nil
}

func (f *fakeOfferRepo) CountActiveFeaturedByCompany(_ context.Context, companyID string, now time.Time) (int, error) {
	n := 0
	for _, o := range f.offers {
		if !o.SoftActive || o.Status != entity.OfferStatusActive || !o.IsFeatured {
			continue
		}
		loc := f.locations.locations[o.LocationID]
		if loc == nil || !loc.Active || loc.CompanyID != companyID {
			continue
		}
		if offerfeed.IsLive(o, now) {
			n++
		}
	}
	return n, nil
}

// fakeTxRunner ejecuta el callback directo sobre los mismos fakes: la
// atomicidad no se simula, solo el cableado.
type fakeTxRunner struct {
	offers    *fakeOfferRepo
	locations *fakeLocationRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.OfferRepository, repository.LocationRepository) error) error {
	return fn(f.offers, f.locations)
}

type fakeMediaStore struct {
	err   error
	calls int
}

func (f *fakeMediaStore) Store(_ context.Context, _ []byte, filename, folder string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "/uploads/" + folder + "/" + filename, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base: empresa basic con un local y tres ofertas activas
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *usecase.OfferUseCase
	offers    *fakeOfferRepo
	locations *fakeLocationRepo
	companies *fakeCompanyRepo
	media     *fakeMediaStore
	now       time.Time
}

const (
	companyBasic = "company-basic"
	companyOther = "company-other"
	locMain      = "loc-main"
	locSecond    = "loc-second"
	locForeign   = "loc-foreign"
)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{
		companyBasic: {ID: companyBasic, Name: "Donas La 70", Plan: entity.PlanBasic, Active: true},
		companyOther: {ID: companyOther, Name: "Otra SAS", Plan: entity.PlanPremium, Active: true},
	}}
	locations := &fakeLocationRepo{locations: map[string]*entity.Location{
		locMain:    {ID: locMain, CompanyID: companyBasic, Address: "Cra 70 #44-30", Active: true},
		locSecond:  {ID: locSecond, CompanyID: companyBasic, Address: "Cl 10 #5-21", Active: true},
		locForeign: {ID: locForeign, CompanyID: companyOther, Address: "Av 80 #30-12", Active: true},
	}}
	offers := &fakeOfferRepo{offers: map[string]*entity.Offer{}, locations: locations}
	media := &fakeMediaStore{}
	tx := &fakeTxRunner{offers: offers, locations: locations}

	engine := quota.NewEngine(quota.DefaultLimits())
	engine.Now = func() time.Time { return now }
	uc := usecase.NewOfferUseCase(tx, offers, locations, companies, media, engine)
	uc.Now = engine.Now

	return &fixture{uc: uc, offers: offers, locations: locations, companies: companies, media: media, now: now}
}

func (f *fixture) seedOffer(id, locationID string, visible, featured bool) *entity.Offer {
	o := &entity.Offer{
		ID:         id,
		LocationID: locationID,
		CategoryID: "cat-1",
		Title:      "Oferta " + id,
		Status:     entity.OfferStatusActive,
		SoftActive: true,
		IsVisible:  visible,
		IsFeatured: featured,
		PromoType:  entity.PromoRegular,
		CreatedAt:  f.now.Add(-time.Hour),
		UpdatedAt:  f.now.Add(-time.Hour),
	}
	f.offers.offers[id] = o
	return o
}

func validCreate(locationID string) dto.CreateOfferRequest {
	return dto.CreateOfferRequest{
		LocationID:   locationID,
		CategoryID:   "cat-1",
		Title:        "2x1 en donas",
		DiscountText: "2x1",
		PriceNormal:  decimal.NewFromInt(10000),
		PriceOffer:   decimal.NewFromInt(5000),
	}
}

func owner() access.Principal {
	return access.Principal{UserID: "u-owner", Role: access.RoleOwner, CompanyID: companyBasic}
}

func manager() access.Principal {
	return access.Principal{UserID: "u-mgr", Role: access.RoleManager, CompanyID: companyBasic, LocationID: locMain}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — validación, alcance y cuota
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CamposFaltantes(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), owner(), dto.CreateOfferRequest{})
	require.Error(t, err)

	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindValidation, de.Kind)
	assert.ElementsMatch(t, []string{"title", "location_id", "category_id", "discount_text"},
		de.Fields["missing_fields"], "la validación reporta TODOS los campos faltantes")
	assert.Empty(t, f.offers.offers, "nada se persiste")
	assert.Zero(t, f.media.calls, "la validación corre antes que cualquier colaborador")
}

func TestCreate_BajoCuotaPersiste(t *testing.T) {
	f := newFixture(t)
	f.seedOffer("o1", locMain, true, false)
	f.seedOffer("o2", locMain, true, false)
	f.seedOffer("o3", locMain, false, false) // oculta: igual ocupa cupo

	out, err := f.uc.Create(context.Background(), owner(), validCreate(locMain))
	require.NoError(t, err, "3 de 4: la cuarta entra")
	assert.True(t, out.IsVisible, "visible por defecto")
	assert.Equal(t, entity.OfferStatusActive, out.Status)
	assert.Len(t, f.offers.offers, 4)
}

func TestCreate_CuotaLlenaDeniega(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"o1", "o2", "o3", "o4"} {
		f.seedOffer(id, locMain, true, false)
	}

	_, err := f.uc.Create(context.Background(), owner(), validCreate(locMain))
	require.Error(t, err)

	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindQuotaOfferActive, de.Kind)
	assert.Equal(t, 4, de.Fields["ceiling"])
	assert.Equal(t, "basic", de.Fields["plan"])
	assert.Len(t, f.offers.offers, 4, "la denegación no deja fila a medias")
}

func TestCreate_TrasBorrarUnaVuelveAEntrar(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"o1", "o2", "o3", "o4"} {
		f.seedOffer(id, locMain, true, false)
	}

	require.NoError(t, f.uc.Delete(context.Background(), owner(), "o2"))

	_, err := f.uc.Create(context.Background(), owner(), validCreate(locMain))
	assert.NoError(t, err, "el borrado lógico libera cupo de inmediato")
}

func TestCreate_CuotaEsPorLocal(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"o1", "o2", "o3", "o4"} {
		f.seedOffer(id, locMain, true, false)
	}

	_, err := f.uc.Create(context.Background(), owner(), validCreate(locSecond))
	assert.NoError(t, err, "el tope de activas es por local, no por empresa")
}

func TestCreate_EnLocalAjenoEsForbidden(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), owner(), validCreate(locForeign))
	assert.True(t, domain.IsKind(err, domain.KindForbidden),
		"crear es escritura: nunca colapsa a not_found")
}

func TestCreate_FalloDeMediaAbortaSinInsertar(t *testing.T) {
	f := newFixture(t)
	f.media.err = errors.New("disco lleno")

	in := validCreate(locMain)
	in.Image = &dto.ImageUpload{Data: []byte{0xFF}, Filename: "dona.jpg"}

	_, err := f.uc.Create(context.Background(), owner(), in)
	assert.True(t, domain.IsKind(err, domain.KindDependency))
	assert.Empty(t, f.offers.offers, "si el media store falla, la fila no se inserta")
}

func TestCreate_FechasInvertidasEsValidation(t *testing.T) {
	f := newFixture(t)
	in := validCreate(locMain)
	start := f.now
	end := f.now.Add(-time.Hour)
	in.StartDate, in.EndDate = &start, &end

	_, err := f.uc.Create(context.Background(), owner(), in)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas — colapso a not_found fuera de tenant
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_FueraDeTenantEsNotFound(t *testing.T) {
	f := newFixture(t)
	f.seedOffer("ajena", locForeign, true, false)

	_, err := f.uc.GetByID(context.Background(), owner(), "ajena")
	assert.True(t, domain.IsKind(err, domain.KindNotFound),
		"para el owner, una oferta ajena es indistinguible de una inexistente")
}

func TestGetByID_InexistenteYBorradaSonIguales(t *testing.T) {
	f := newFixture(t)
	f.seedOffer("muerta", locMain, true, false)
	require.NoError(t, f.uc.Delete(context.Background(), owner(), "muerta"))

	_, errBorrada := f.uc.GetByID(context.Background(), owner(), "muerta")
	_, errFantasma := f.uc.GetByID(context.Background(), owner(), "nunca-existio")
	assert.True(t, domain.IsKind(errBorrada, domain.KindNotFound))
	assert.True(t, domain.IsKind(errFantasma, domain.KindNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// SetVisible — reactivar re-ejecuta cuota excluyéndose a sí misma
// ──────────────────────────────────────────────────────────────────────────────

func TestSetVisible_ReactivarExcluyeLaPropiaOferta(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"o1", "o2", "o3"} {
		f.seedOffer(id, locMain, true, false)
	}
	f.seedOffer("oculta", locMain, false, false)

	out, err := f.uc.SetVisible(context.Background(), owner(), "oculta", true)
	require.NoError(t, err,
		"la oculta sigue contando como activa: excluida de su propio conteo quedan 3 de 4")
	assert.True(t, out.IsVisible)
}

func TestSetVisible_SinTransicionNoConsultaCuota(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"o1", "o2", "o3", "o4"} {
		f.seedOffer(id, locMain, true, false)
	}

	out, err := f.uc.SetVisible(context.Background(), owner(), "o1", true)
	require.NoError(t, err, "ya visible: no hay transición ni cuota")
	assert.True(t, out.IsVisible)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetFeatured — cuota por empresa, solo en 0→1
// ──────────────────────────────────────────────────────────────────────────────

func TestSetFeatured_TopeBasicEsUno(t *testing.T) {
	f := newFixture(t)
	f.seedOffer("destacada", locMain, true, true)
	f.seedOffer("candidata", locSecond, true, false)

	_, err := f.uc.SetFeatured(context.Background(), owner(), "candidata", true)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindQuotaOfferFeatured),
		"el conteo de destacadas es por empresa, cruzando locales")
}

func TestSetFeatured_ApagarNuncaConsultaCuota(t *testing.T) {
	f := newFixture(t)
	f.seedOffer("destacada", locMain, true, true)

	out, err := f.uc.SetFeatured(context.Background(), owner(), "destacada", false)
	require.NoError(t, err)
	assert.False(t, out.IsFeatured)
}

func TestSetFeatured_VencidaLiberaCupo(t *testing.T) {
	f := newFixture(t)
	vencida := f.seedOffer("vencida", locMain, true, true)
	end := f.now.Add(-24 * time.Hour)
	vencida.EndDate = &end
	f.seedOffer("candidata", locSecond, true, false)

	_, err := f.uc.SetFeatured(context.Background(), owner(), "candidata", true)
	assert.NoError(t, err, "una destacada fuera de vigencia no ocupa cupo de destacadas")
}

func TestSetFeatured_ManagerFueraDeSuLocalEsForbidden(t *testing.T) {
	f := newFixture(t)
	f.seedOffer("de-otro-local", locSecond, true, false)

	_, err := f.uc.SetFeatured(context.Background(), manager(), "de-otro-local", true)
	assert.True(t, domain.IsKind(err, domain.KindForbidden),
		"mismo tenant: el recurso es conocible, se responde forbidden")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete — terminal, no idempotente
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_DosVecesEsNotFound(t *testing.T) {
	f := newFixture(t)
	f.seedOffer("o1", locMain, true, false)

	require.NoError(t, f.uc.Delete(context.Background(), owner(), "o1"))
	err := f.uc.Delete(context.Background(), owner(), "o1")
	assert.True(t, domain.IsKind(err, domain.KindNotFound),
		"borrar una borrada no es éxito silencioso")
}

// ──────────────────────────────────────────────────────────────────────────────
// Feeds públicos
// ──────────────────────────────────────────────────────────────────────────────

func TestPublicCatalog_ExcluyeNoElegiblesYOrdena(t *testing.T) {
	f := newFixture(t)
	f.seedOffer("normal", locMain, true, false)
	destacada := f.seedOffer("destacada", locSecond, true, true)
	destacada.CreatedAt = f.now.Add(-48 * time.Hour) // vieja pero destacada

	futura := f.seedOffer("futura", locMain, true, false)
	start := f.now.Add(time.Hour)
	futura.StartDate = &start

	f.seedOffer("oculta", locMain, false, false)

	out, err := f.uc.PublicCatalog(context.Background(), "", "", dto.PageRequest{})
	require.NoError(t, err)

	got := make([]string, len(out.Items))
	for i, o := range out.Items {
		got[i] = o.ID
	}
	assert.Equal(t, []string{"destacada", "normal"}, got,
		"futuras y ocultas fuera; destacada primero aunque sea más vieja")
}

func TestCompanyStory_FlashPrimero(t *testing.T) {
	f := newFixture(t)
	f.seedOffer("regular", locMain, true, true)
	flash := f.seedOffer("flash", locSecond, true, false)
	flash.PromoType = entity.PromoFlash

	out, err := f.uc.CompanyStory(context.Background(), companyBasic)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "flash", out.Items[0].ID, "en historias la promo pesa más que el destacado")
}

func TestCompanyStory_EmpresaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CompanyStory(context.Background(), "no-existe")
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
