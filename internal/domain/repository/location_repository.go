package repository

import (
	"context"

	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location.
// GetByID devuelve solo filas activas (nil si no existe o está borrada).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	List(ctx context.Context, scope access.Filter) ([]*entity.Location, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
	// CountActiveByCompany cuenta locales activos de la empresa (cuota de locales).
	CountActiveByCompany(ctx context.Context, companyID string) (int, error)
}
