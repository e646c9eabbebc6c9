package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de promoción. El orden de prioridad en el feed de historias es
// flash < day < week < regular (ver offerfeed.Rank).
const (
	PromoRegular = "regular"
	PromoFlash   = "flash"
	PromoDay     = "day"
	PromoWeek    = "week"
)

// Estados de una oferta. Distinto del borrado lógico (SoftActive).
const (
	OfferStatusActive   = "active"
	OfferStatusInactive = "inactive"
)

// Offer es una oferta promocional publicada en un local. Pertenece a exactamente
// una Location (y transitivamente a una Company).
//
// Ciclo de vida: se crea con Status=active y SoftActive=true; Delete pone
// SoftActive=false y es terminal (no hay undelete). Las cuotas cuentan solo
// filas con SoftActive=true y Status=active.
type Offer struct {
	ID           string
	LocationID   string
	CategoryID   string
	Title        string
	Description  string
	DiscountText string
	PriceNormal  decimal.Decimal
	PriceOffer   decimal.Decimal
	ImageURL     string
	StartDate    *time.Time // nil = sin límite inferior
	EndDate      *time.Time // nil = sin límite superior
	IsVisible    bool
	IsFeatured   bool
	PromoType    string
	Status       string
	SoftActive   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidPromoType informa si el tipo de promoción es conocido.
func ValidPromoType(t string) bool {
	switch t {
	case PromoRegular, PromoFlash, PromoDay, PromoWeek:
		return true
	}
	return false
}
