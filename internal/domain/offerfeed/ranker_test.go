package offerfeed_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/internal/domain/offerfeed"
)

func offer(id string, promo string, featured bool, createdAt time.Time) *entity.Offer {
	return &entity.Offer{
		ID:         id,
		PromoType:  promo,
		IsFeatured: featured,
		SoftActive: true,
		Status:     entity.OfferStatusActive,
		IsVisible:  true,
		CreatedAt:  createdAt,
	}
}

func ids(offers []*entity.Offer) []string {
	out := make([]string, len(offers))
	for i, o := range offers {
		out[i] = o.ID
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo catálogo: destacadas primero, luego las más nuevas
// ──────────────────────────────────────────────────────────────────────────────

func TestRank_Catalogo_DestacadasPrimero(t *testing.T) {
	t0 := now
	in := []*entity.Offer{
		offer("vieja-normal", entity.PromoRegular, false, t0.Add(-3*time.Hour)),
		offer("nueva-normal", entity.PromoRegular, false, t0.Add(-1*time.Hour)),
		offer("vieja-destacada", entity.PromoRegular, true, t0.Add(-5*time.Hour)),
	}

	out := offerfeed.Rank(in, offerfeed.ModeCatalog, t0)
	assert.Equal(t, []string{"vieja-destacada", "nueva-normal", "vieja-normal"}, ids(out),
		"una destacada vieja va antes que cualquier no destacada")
}

func TestRank_Catalogo_IgnoraTipoDePromo(t *testing.T) {
	t0 := now
	in := []*entity.Offer{
		offer("flash-vieja", entity.PromoFlash, false, t0.Add(-2*time.Hour)),
		offer("regular-nueva", entity.PromoRegular, false, t0.Add(-1*time.Hour)),
	}

	out := offerfeed.Rank(in, offerfeed.ModeCatalog, t0)
	assert.Equal(t, []string{"regular-nueva", "flash-vieja"}, ids(out),
		"en catálogo la promo no pesa; gana la más nueva")
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo historias: flash < day < week < regular, luego destacadas, luego nuevas
// ──────────────────────────────────────────────────────────────────────────────

func TestRank_Historias_PrioridadPorPromo(t *testing.T) {
	t0 := now
	in := []*entity.Offer{
		offer("regular", entity.PromoRegular, true, t0), // destacada pero regular
		offer("week", entity.PromoWeek, false, t0.Add(-3*time.Hour)),
		offer("flash", entity.PromoFlash, false, t0.Add(-9*time.Hour)),
		offer("day", entity.PromoDay, false, t0.Add(-6*time.Hour)),
	}

	out := offerfeed.Rank(in, offerfeed.ModeCompanyStory, t0)
	assert.Equal(t, []string{"flash", "day", "week", "regular"}, ids(out),
		"el tipo de promo domina sobre destacado y antigüedad")
}

func TestRank_Historias_DestacadaDesempataDentroDelMismoPromo(t *testing.T) {
	t0 := now
	in := []*entity.Offer{
		offer("flash-normal", entity.PromoFlash, false, t0),
		offer("flash-destacada", entity.PromoFlash, true, t0.Add(-time.Hour)),
	}

	out := offerfeed.Rank(in, offerfeed.ModeCompanyStory, t0)
	assert.Equal(t, []string{"flash-destacada", "flash-normal"}, ids(out))
}

func TestRank_Historias_ExcluyeNoElegibles(t *testing.T) {
	t0 := now
	oculta := offer("oculta", entity.PromoFlash, false, t0)
	oculta.IsVisible = false
	futura := offer("futura", entity.PromoFlash, false, t0)
	futura.StartDate = ts(t0.Add(time.Hour))

	in := []*entity.Offer{oculta, futura, offer("visible", entity.PromoRegular, false, t0)}
	out := offerfeed.Rank(in, offerfeed.ModeCompanyStory, t0)
	assert.Equal(t, []string{"visible"}, ids(out),
		"historias solo incluye elegibles; catálogo filtra aguas arriba")
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden total y determinismo
// ──────────────────────────────────────────────────────────────────────────────

func TestRank_OrdenTotalDeterminista(t *testing.T) {
	t0 := now
	// Mismas llaves en todo: solo el ID desempata.
	in := []*entity.Offer{
		offer("bbb", entity.PromoRegular, false, t0),
		offer("aaa", entity.PromoRegular, false, t0),
		offer("ccc", entity.PromoRegular, false, t0),
	}

	first := offerfeed.Rank(in, offerfeed.ModeCatalog, t0)
	for i := 0; i < 10; i++ {
		again := offerfeed.Rank(in, offerfeed.ModeCatalog, t0)
		require.Equal(t, ids(first), ids(again),
			"dos pasadas sobre el mismo conjunto producen el mismo orden")
	}
	assert.Equal(t, []string{"ccc", "bbb", "aaa"}, ids(first), "ID como última llave, descendente")
}

func TestRank_NoMutaLaEntrada(t *testing.T) {
	t0 := now
	in := []*entity.Offer{
		offer("a", entity.PromoRegular, false, t0.Add(-2*time.Hour)),
		offer("b", entity.PromoRegular, true, t0),
	}
	_ = offerfeed.Rank(in, offerfeed.ModeCatalog, t0)
	assert.Equal(t, []string{"a", "b"}, ids(in), "el slice de entrada conserva su orden")
}
