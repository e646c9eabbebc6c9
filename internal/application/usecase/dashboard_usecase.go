package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/ofertas-pro/internal/application/dto"
	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
)

// DashboardUseCase agregados del panel y feed "always on" de la portada.
type DashboardUseCase struct {
	dashboard repository.DashboardRepository

	Now func() time.Time
}

func NewDashboardUseCase(dashboard repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{dashboard: dashboard}
}

func (uc *DashboardUseCase) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// Stats devuelve los agregados del panel filtrados por el alcance del
// principal: superadmin global, owner su empresa, manager su local.
func (uc *DashboardUseCase) Stats(ctx context.Context, p access.Principal) (*dto.DashboardResponse, error) {
	scope, ok := access.ListFilter(p, access.KindOffer)
	if !ok {
		return nil, domain.Forbidden("no autorizado para ver el dashboard")
	}
	stats, err := uc.dashboard.Stats(ctx, scope)
	if err != nil {
		return nil, domain.Dependency("consulta de dashboard", err)
	}
	resp := &dto.DashboardResponse{
		TotalOffers:    stats.TotalOffers,
		ActiveOffers:   stats.ActiveOffers,
		TotalLocations: stats.TotalLocations,
		RecentOffers:   make([]dto.RecentOfferResponse, 0, len(stats.RecentOffers)),
		TopCategories:  make([]dto.CategoryCountResponse, 0, len(stats.TopCategories)),
	}
	for _, o := range stats.RecentOffers {
		resp.RecentOffers = append(resp.RecentOffers, dto.RecentOfferResponse{
			ID:          o.ID,
			Title:       o.Title,
			PriceOffer:  o.PriceOffer,
			CompanyName: o.CompanyName,
			CreatedAt:   o.CreatedAt,
		})
	}
	for _, c := range stats.TopCategories {
		resp.TopCategories = append(resp.TopCategories, dto.CategoryCountResponse{Name: c.Name, Count: c.Count})
	}
	return resp, nil
}

// RecentActivity devuelve el feed público de portada: empresas con ofertas
// vigentes ahora mismo, las que tienen flash activo primero.
func (uc *DashboardUseCase) RecentActivity(ctx context.Context, limit int) ([]dto.CompanyActivityResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := uc.dashboard.RecentActivity(ctx, uc.now(), limit)
	if err != nil {
		return nil, domain.Dependency("consulta de actividad reciente", err)
	}
	items := make([]dto.CompanyActivityResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.CompanyActivityResponse{
			CompanyID:      r.CompanyID,
			CompanyName:    r.CompanyName,
			CompanyLogo:    r.CompanyLogo,
			LastUpdate:     r.LastUpdate,
			NewOffersCount: r.NewOffersCount,
			HasFlashOffer:  r.HasFlashOffer,
			LatestOfferID:  r.LatestOfferID,
		})
	}
	return items, nil
}
