package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
)

// OfferListFilter parámetros de listado de ofertas. Scope es el predicado que
// produce AccessScope y el repositorio DEBE empujar a su query (no se
// post-filtra en memoria un scan grande). Limit=0 significa sin paginación
// SQL: el feed público ordena con FeedRanker en memoria y pagina después.
type OfferListFilter struct {
	Scope      access.Filter
	CategoryID string
	Search     string // busca en título y descripción
	Limit      int
	Offset     int
}

// OfferRepository define el puerto de persistencia para Offer.
//
// GetByID devuelve solo filas con soft_active=true (nil si no existe o está
// borrada). Los conteos Count* son los que consume quota.Engine: cuando se
// necesita atomicidad entre conteo y escritura, usar la variante del
// repositorio atada a una transacción (TxRunner).
type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	Update(ctx context.Context, offer *entity.Offer) error
	List(ctx context.Context, f OfferListFilter) ([]*entity.Offer, error)
	// ListByCompany devuelve las ofertas no borradas y con status=active de
	// todos los locales activos de la empresa (feed de historias).
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Offer, error)
	SoftDelete(ctx context.Context, id string) (bool, error)

	CountActiveByLocation(ctx context.Context, locationID, excludeOfferID string) (int, error)
	CountActiveFeaturedByCompany(ctx context.Context, companyID string, now time.Time) (int, error)
}
