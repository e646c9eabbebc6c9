package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
)

// Limits es la tabla canónica de topes por plan. Es un valor configurable, no
// constantes dispersas: el historial del sistema muestra deriva de topes entre
// revisiones, así que la tabla vive en un solo lugar y se inyecta al Engine.
type Limits struct {
	ActiveOffers   map[entity.Plan]int // ofertas activas concurrentes por local
	FeaturedOffers map[entity.Plan]int // ofertas destacadas vigentes por empresa
	Locations      map[entity.Plan]int // locales activos por empresa
}

// DefaultLimits devuelve la tabla canónica.
func DefaultLimits() Limits {
	return Limits{
		ActiveOffers:   map[entity.Plan]int{entity.PlanBasic: 4, entity.PlanPremium: 20, entity.PlanEnterprise: 100},
		FeaturedOffers: map[entity.Plan]int{entity.PlanBasic: 1, entity.PlanPremium: 2, entity.PlanEnterprise: 10},
		Locations:      map[entity.Plan]int{entity.PlanBasic: 3, entity.PlanPremium: 15, entity.PlanEnterprise: 50},
	}
}

// OfferCounter es el puerto de conteo que necesita el engine para cuotas de
// ofertas. Lo satisface repository.OfferRepository (también su variante
// atada a una transacción).
type OfferCounter interface {
	// CountActiveByLocation cuenta ofertas con status=active y soft_active=true
	// en el local, excluyendo excludeOfferID si no es vacío.
	CountActiveByLocation(ctx context.Context, locationID, excludeOfferID string) (int, error)
	// CountActiveFeaturedByCompany cuenta ofertas destacadas, activas y
	// vigentes a la fecha dada, en TODOS los locales de la empresa.
	CountActiveFeaturedByCompany(ctx context.Context, companyID string, now time.Time) (int, error)
}

// LocationCounter es el puerto de conteo para la cuota de locales.
type LocationCounter interface {
	CountActiveByCompany(ctx context.Context, companyID string) (int, error)
}

// Engine aplica los topes de plan. Cada Check* es conteo-y-decisión en una
// sola llamada SIN garantía de atomicidad con la escritura posterior: dos
// peticiones concurrentes pueden leer el mismo conteo y ambas pasar. Quien
// despliega debe envolver Check + insert en una unidad serializable
// (TxRunner, advisory lock por local, o insert condicional); el límite del
// contrato está exactamente en este paso para que sea bloqueable.
type Engine struct {
	limits Limits

	// Now permite fijar el reloj en tests; nil = time.Now.
	Now func() time.Time
}

// NewEngine construye el engine con la tabla de topes dada.
func NewEngine(limits Limits) *Engine {
	return &Engine{limits: limits}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// ceilingFor busca el tope del plan en la tabla. Plan desconocido usa el tope
// de basic: ante datos corruptos preferimos el tope más restrictivo.
func ceilingFor(table map[entity.Plan]int, plan entity.Plan) int {
	if c, ok := table[plan]; ok {
		return c
	}
	return table[entity.PlanBasic]
}

// CheckActiveOffers permite o deniega activar una oferta más en el local
// (creación, o paso de oculta a visible). excludeOfferID excluye del conteo la
// propia oferta cuando ya existe.
func (e *Engine) CheckActiveOffers(ctx context.Context, counts OfferCounter, company *entity.Company, locationID, excludeOfferID string) error {
	ceiling := ceilingFor(e.limits.ActiveOffers, company.Plan)
	current, err := counts.CountActiveByLocation(ctx, locationID, excludeOfferID)
	if err != nil {
		return domain.Dependency("conteo de ofertas activas", err)
	}
	if current >= ceiling {
		return domain.QuotaExceeded(domain.KindQuotaOfferActive,
			fmt.Sprintf("límite alcanzado: el plan %s permite máximo %d ofertas activas por local", company.Plan, ceiling),
			ceiling, string(company.Plan))
	}
	return nil
}

// CheckFeaturedOffers permite o deniega destacar una oferta más. El conteo es
// por empresa (todos sus locales) y solo considera destacadas vigentes ahora.
// Se evalúa únicamente en la transición 0→1 de is_featured.
func (e *Engine) CheckFeaturedOffers(ctx context.Context, counts OfferCounter, company *entity.Company) error {
	ceiling := ceilingFor(e.limits.FeaturedOffers, company.Plan)
	current, err := counts.CountActiveFeaturedByCompany(ctx, company.ID, e.now())
	if err != nil {
		return domain.Dependency("conteo de ofertas destacadas", err)
	}
	if current >= ceiling {
		return domain.QuotaExceeded(domain.KindQuotaOfferFeatured,
			fmt.Sprintf("límite alcanzado: el plan %s permite máximo %d ofertas destacadas por empresa", company.Plan, ceiling),
			ceiling, string(company.Plan))
	}
	return nil
}

// CheckLocations permite o deniega crear un local más para la empresa.
// CustomBranchLimit, si está definido, sobrescribe el tope del plan (es el
// ÚNICO tope que sobrescribe).
func (e *Engine) CheckLocations(ctx context.Context, counts LocationCounter, company *entity.Company) error {
	ceiling := ceilingFor(e.limits.Locations, company.Plan)
	if company.CustomBranchLimit != nil {
		ceiling = *company.CustomBranchLimit
	}
	current, err := counts.CountActiveByCompany(ctx, company.ID)
	if err != nil {
		return domain.Dependency("conteo de locales", err)
	}
	if current >= ceiling {
		return domain.QuotaExceeded(domain.KindQuotaLocation,
			fmt.Sprintf("límite alcanzado: el plan %s permite máximo %d locales", company.Plan, ceiling),
			ceiling, string(company.Plan))
	}
	return nil
}
