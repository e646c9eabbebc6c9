package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
)

// Asegura que DashboardRepo implementa repository.DashboardRepository.
var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas del panel y de la portada (solo lectura).
type DashboardRepo struct {
	db db
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{db: pool}
}

// Stats devuelve los agregados del panel filtrados por el alcance dado.
// TopCategories solo se calcula para alcance global (superadmin): la gráfica
// por categorías es del marketplace completo, no de un tenant.
func (r *DashboardRepo) Stats(ctx context.Context, scope access.Filter) (*repository.DashboardStats, error) {
	stats := &repository.DashboardStats{}

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE o.status = 'active')
		FROM offers o
		JOIN locations l ON l.id = o.location_id AND l.active = true
		WHERE o.soft_active = true
		  AND ($1 = '' OR l.company_id = $1)
		  AND ($2 = '' OR o.location_id = $2)`
	if err := r.db.QueryRow(ctx, query, scope.CompanyID, scope.LocationID).
		Scan(&stats.TotalOffers, &stats.ActiveOffers); err != nil {
		return nil, fmt.Errorf("stats offers: %w", err)
	}

	query = `
		SELECT COUNT(*) FROM locations
		WHERE active = true
		  AND ($1 = '' OR company_id = $1)
		  AND ($2 = '' OR id = $2)`
	if err := r.db.QueryRow(ctx, query, scope.CompanyID, scope.LocationID).
		Scan(&stats.TotalLocations); err != nil {
		return nil, fmt.Errorf("stats locations: %w", err)
	}

	query = `
		SELECT o.id, o.title, o.price_offer, c.name, o.created_at
		FROM offers o
		JOIN locations l ON l.id = o.location_id AND l.active = true
		JOIN companies c ON c.id = l.company_id AND c.active = true
		WHERE o.soft_active = true
		  AND ($1 = '' OR l.company_id = $1)
		  AND ($2 = '' OR o.location_id = $2)
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT 5`
	rows, err := r.db.Query(ctx, query, scope.CompanyID, scope.LocationID)
	if err != nil {
		return nil, fmt.Errorf("stats recent offers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var o repository.RecentOffer
		if err := rows.Scan(&o.ID, &o.Title, &o.PriceOffer, &o.CompanyName, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent offer: %w", err)
		}
		stats.RecentOffers = append(stats.RecentOffers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if scope.Unrestricted() {
		query = `
			SELECT cat.name, COUNT(o.id)
			FROM categories cat
			LEFT JOIN offers o ON o.category_id = cat.id AND o.soft_active = true AND o.status = 'active'
			GROUP BY cat.name
			ORDER BY COUNT(o.id) DESC, cat.name
			LIMIT 6`
		catRows, err := r.db.Query(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("stats categories: %w", err)
		}
		defer catRows.Close()
		for catRows.Next() {
			var c repository.CategoryCount
			if err := catRows.Scan(&c.Name, &c.Count); err != nil {
				return nil, fmt.Errorf("scan category count: %w", err)
			}
			stats.TopCategories = append(stats.TopCategories, c)
		}
		if err := catRows.Err(); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// RecentActivity devuelve el feed "always on" de la portada: empresas con
// ofertas visibles y vigentes ahora, ordenadas por flash activo primero y
// después por última publicación.
func (r *DashboardRepo) RecentActivity(ctx context.Context, now time.Time, limit int) ([]repository.CompanyActivity, error) {
	query := `
		SELECT
			c.id,
			c.name,
			COALESCE(c.logo_url, ''),
			MAX(o.created_at)                                              AS last_update,
			COUNT(*) FILTER (WHERE o.created_at > $1 - interval '7 days')  AS new_offers,
			BOOL_OR(o.promo_type = 'flash')                                AS has_flash,
			(ARRAY_AGG(o.id ORDER BY o.created_at DESC))[1]                AS latest_offer
		FROM companies c
		JOIN locations l ON l.company_id = c.id AND l.active = true
		JOIN offers o ON o.location_id = l.id
			AND o.soft_active = true AND o.status = 'active' AND o.is_visible = true
			AND (o.start_date IS NULL OR o.start_date <= $1)
			AND (o.end_date IS NULL OR o.end_date >= $1)
		WHERE c.active = true
		GROUP BY c.id, c.name, c.logo_url
		ORDER BY has_flash DESC, last_update DESC
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	var list []repository.CompanyActivity
	for rows.Next() {
		var a repository.CompanyActivity
		if err := rows.Scan(
			&a.CompanyID, &a.CompanyName, &a.CompanyLogo,
			&a.LastUpdate, &a.NewOffersCount, &a.HasFlashOffer, &a.LatestOfferID,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
