package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
)

// Asegura que OfferRepo implementa repository.OfferRepository.
var _ repository.OfferRepository = (*OfferRepo)(nil)

// OfferRepo implementación del puerto OfferRepository sobre PostgreSQL.
// Todas las lecturas exigen local y empresa activos: una oferta cuyo local
// fue borrado no aparece en ningún listado ni conteo.
type OfferRepo struct {
	db db
}

// NewOfferRepository construye el adaptador de persistencia para ofertas.
func NewOfferRepository(pool *pgxpool.Pool) *OfferRepo {
	return &OfferRepo{db: pool}
}

const offerColumns = `o.id, o.location_id, o.category_id, o.title, o.description, o.discount_text,
	o.price_normal, o.price_offer, o.image_url, o.start_date, o.end_date,
	o.is_visible, o.is_featured, o.promo_type, o.status, o.soft_active, o.created_at, o.updated_at`

// Create persiste una nueva oferta.
func (r *OfferRepo) Create(ctx context.Context, o *entity.Offer) error {
	query := `
		INSERT INTO offers (id, location_id, category_id, title, description, discount_text,
			price_normal, price_offer, image_url, start_date, end_date,
			is_visible, is_featured, promo_type, status, soft_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.db.Exec(ctx, query,
		o.ID, o.LocationID, o.CategoryID, o.Title, o.Description, o.DiscountText,
		o.PriceNormal, o.PriceOffer, o.ImageURL, o.StartDate, o.EndDate,
		o.IsVisible, o.IsFeatured, o.PromoType, o.Status, o.SoftActive, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

// GetByID obtiene una oferta no borrada por ID. nil si no existe o está borrada.
func (r *OfferRepo) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers o WHERE o.id = $1 AND o.soft_active = true`
	row := r.db.QueryRow(ctx, query, id)
	o, err := scanOffer(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return o, nil
}

// Update actualiza una oferta existente.
func (r *OfferRepo) Update(ctx context.Context, o *entity.Offer) error {
	query := `
		UPDATE offers SET category_id = $2, title = $3, description = $4, discount_text = $5,
			price_normal = $6, price_offer = $7, image_url = $8, start_date = $9, end_date = $10,
			is_visible = $11, is_featured = $12, promo_type = $13, status = $14, updated_at = $15
		WHERE id = $1 AND soft_active = true`
	_, err := r.db.Exec(ctx, query,
		o.ID, o.CategoryID, o.Title, o.Description, o.DiscountText,
		o.PriceNormal, o.PriceOffer, o.ImageURL, o.StartDate, o.EndDate,
		o.IsVisible, o.IsFeatured, o.PromoType, o.Status, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	return nil
}

// List devuelve ofertas no borradas según el filtro, con el predicado de
// alcance empujado a la query. Limit=0 significa sin paginación SQL (el feed
// público ordena en memoria y pagina después).
func (r *OfferRepo) List(ctx context.Context, f repository.OfferListFilter) ([]*entity.Offer, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + offerColumns + `
		FROM offers o
		JOIN locations l ON l.id = o.location_id AND l.active = true
		JOIN companies c ON c.id = l.company_id AND c.active = true
		WHERE o.soft_active = true`)

	args := make([]any, 0, 6)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.Scope.CompanyID != "" {
		b.WriteString(` AND l.company_id = ` + arg(f.Scope.CompanyID))
	}
	if f.Scope.LocationID != "" {
		b.WriteString(` AND o.location_id = ` + arg(f.Scope.LocationID))
	}
	if f.CategoryID != "" {
		b.WriteString(` AND o.category_id = ` + arg(f.CategoryID))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		b.WriteString(` AND (o.title ILIKE ` + p + ` OR o.description ILIKE ` + p + `)`)
	}
	b.WriteString(` ORDER BY o.created_at DESC, o.id DESC`)
	if f.Limit > 0 {
		b.WriteString(` LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset))
	}

	rows, err := r.db.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()
	return scanOffers(rows)
}

// ListByCompany devuelve las ofertas con status=active de los locales activos
// de la empresa (feed de historias; la elegibilidad temporal se decide arriba).
func (r *OfferRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers o
		JOIN locations l ON l.id = o.location_id AND l.active = true
		WHERE l.company_id = $1 AND o.soft_active = true AND o.status = 'active'
		ORDER BY o.created_at DESC, o.id DESC`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list offers by company: %w", err)
	}
	defer rows.Close()
	return scanOffers(rows)
}

// SoftDelete marca la oferta como borrada. false si no había fila viva que
// borrar (borrado terminal, no idempotente).
func (r *OfferRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.db.Exec(ctx,
		`UPDATE offers SET soft_active = false, updated_at = now() WHERE id = $1 AND soft_active = true`, id)
	if err != nil {
		return false, fmt.Errorf("soft delete offer: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// CountActiveByLocation cuenta ofertas activas y no borradas del local,
// excluyendo excludeOfferID si no es vacío. La visibilidad NO entra en el
// conteo: una oferta oculta sigue ocupando cupo.
func (r *OfferRepo) CountActiveByLocation(ctx context.Context, locationID, excludeOfferID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM offers
		WHERE location_id = $1 AND soft_active = true AND status = 'active'
		  AND ($2 = '' OR id <> $2)`
	var n int
	if err := r.db.QueryRow(ctx, query, locationID, excludeOfferID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active offers: %w", err)
	}
	return n, nil
}

// CountActiveFeaturedByCompany cuenta las destacadas vigentes a la fecha dada
// en todos los locales activos de la empresa.
func (r *OfferRepo) CountActiveFeaturedByCompany(ctx context.Context, companyID string, now time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM offers o
		JOIN locations l ON l.id = o.location_id AND l.active = true
		WHERE l.company_id = $1
		  AND o.soft_active = true AND o.status = 'active' AND o.is_featured = true
		  AND (o.start_date IS NULL OR o.start_date <= $2)
		  AND (o.end_date IS NULL OR o.end_date >= $2)`
	var n int
	if err := r.db.QueryRow(ctx, query, companyID, now).Scan(&n); err != nil {
		return 0, fmt.Errorf("count featured offers: %w", err)
	}
	return n, nil
}

func scanOffer(row pgx.Row) (*entity.Offer, error) {
	var o entity.Offer
	err := row.Scan(
		&o.ID, &o.LocationID, &o.CategoryID, &o.Title, &o.Description, &o.DiscountText,
		&o.PriceNormal, &o.PriceOffer, &o.ImageURL, &o.StartDate, &o.EndDate,
		&o.IsVisible, &o.IsFeatured, &o.PromoType, &o.Status, &o.SoftActive, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOffers(rows pgx.Rows) ([]*entity.Offer, error) {
	var list []*entity.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
