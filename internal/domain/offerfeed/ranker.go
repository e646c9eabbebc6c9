package offerfeed

import (
	"sort"
	"time"

	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
)

// Mode selecciona el criterio de ordenamiento del feed.
type Mode int

const (
	// ModeCatalog: catálogo público. Destacadas primero, luego las más nuevas.
	ModeCatalog Mode = iota
	// ModeCompanyStory: feed vertical de "historias" de una empresa.
	// Prioridad por tipo de promo (flash < day < week < regular), luego
	// destacadas, luego las más nuevas. Solo incluye ofertas elegibles.
	ModeCompanyStory
)

// promoPriority replica la prioridad de historias: flash=1, day=2, week=3, resto=4.
func promoPriority(t string) int {
	switch t {
	case entity.PromoFlash:
		return 1
	case entity.PromoDay:
		return 2
	case entity.PromoWeek:
		return 3
	}
	return 4
}

// Rank ordena las ofertas según el modo. El orden es determinista y total:
// el ID entra siempre como última llave para que dos llamadas sobre el mismo
// conjunto produzcan el mismo orden y la paginación sea estable. No muta el
// slice de entrada.
//
// Los IDs son UUID (no temporales), así que la llave de "más reciente" es
// CreatedAt y el ID solo desempata.
func Rank(offers []*entity.Offer, mode Mode, now time.Time) []*entity.Offer {
	in := offers
	if mode == ModeCompanyStory {
		in = FilterEligible(offers, now)
	}
	out := make([]*entity.Offer, len(in))
	copy(out, in)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if mode == ModeCompanyStory {
			pa, pb := promoPriority(a.PromoType), promoPriority(b.PromoType)
			if pa != pb {
				return pa < pb
			}
		}
		if a.IsFeatured != b.IsFeatured {
			return a.IsFeatured
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return out
}
