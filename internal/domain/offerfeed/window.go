package offerfeed

import (
	"time"

	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
)

// IsLive informa si la oferta está temporalmente vigente en el instante dado.
// Ambos extremos son inclusivos; una fecha nil no acota por ese lado. Una
// oferta sin fechas siempre está vigente.
func IsLive(o *entity.Offer, now time.Time) bool {
	if o.StartDate != nil && now.Before(*o.StartDate) {
		return false
	}
	if o.EndDate != nil && now.After(*o.EndDate) {
		return false
	}
	return true
}

// Eligible es el predicado de inclusión en el feed público:
// no borrada, status active, visible y vigente.
func Eligible(o *entity.Offer, now time.Time) bool {
	return o.SoftActive && o.Status == entity.OfferStatusActive && o.IsVisible && IsLive(o, now)
}

// FilterEligible devuelve solo las ofertas elegibles, preservando el orden de entrada.
func FilterEligible(offers []*entity.Offer, now time.Time) []*entity.Offer {
	out := make([]*entity.Offer, 0, len(offers))
	for _, o := range offers {
		if Eligible(o, now) {
			out = append(out, o)
		}
	}
	return out
}
