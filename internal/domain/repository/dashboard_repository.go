package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
)

// RecentOffer fila cruda de "ofertas recientes" del dashboard.
type RecentOffer struct {
	ID          string
	Title       string
	PriceOffer  decimal.Decimal
	CompanyName string
	CreatedAt   time.Time
}

// CategoryCount conteo de ofertas por categoría (gráfica del dashboard).
type CategoryCount struct {
	Name  string
	Count int
}

// DashboardStats agregados del panel de administración, ya filtrados por el
// alcance del principal.
type DashboardStats struct {
	TotalOffers    int
	ActiveOffers   int
	TotalLocations int
	RecentOffers   []RecentOffer
	TopCategories  []CategoryCount
}

// CompanyActivity fila del feed "always on" de la portada: empresas con
// ofertas vigentes en este momento, las que tienen flash activo primero.
type CompanyActivity struct {
	CompanyID      string
	CompanyName    string
	CompanyLogo    string
	LastUpdate     time.Time
	NewOffersCount int
	HasFlashOffer  bool
	LatestOfferID  string
}

// DashboardRepository consultas de lectura para el dashboard y la portada.
// Las implementaciones son read-only.
type DashboardRepository interface {
	Stats(ctx context.Context, scope access.Filter) (*DashboardStats, error)
	RecentActivity(ctx context.Context, now time.Time, limit int) ([]CompanyActivity, error)
}
