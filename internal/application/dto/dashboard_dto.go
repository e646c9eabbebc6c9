package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse agregados del panel, ya filtrados por el alcance del principal.
type DashboardResponse struct {
	TotalOffers    int                     `json:"total_offers"`
	ActiveOffers   int                     `json:"active_offers"`
	TotalLocations int                     `json:"total_locations"`
	RecentOffers   []RecentOfferResponse   `json:"recent_offers"`
	TopCategories  []CategoryCountResponse `json:"top_categories"`
}

// RecentOfferResponse fila de "ofertas recientes".
type RecentOfferResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	PriceOffer  decimal.Decimal `json:"price_offer"`
	CompanyName string          `json:"company_name"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CategoryCountResponse conteo por categoría.
type CategoryCountResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CompanyActivityResponse fila del feed de portada ("always on").
type CompanyActivityResponse struct {
	CompanyID      string    `json:"company_id"`
	CompanyName    string    `json:"company_name"`
	CompanyLogo    string    `json:"company_logo,omitempty"`
	LastUpdate     time.Time `json:"last_update"`
	NewOffersCount int       `json:"new_offers_count"`
	HasFlashOffer  bool      `json:"has_flash_offer"`
	LatestOfferID  string    `json:"latest_offer_id,omitempty"`
}
