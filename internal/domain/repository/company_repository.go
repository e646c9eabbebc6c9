package repository

import (
	"context"

	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
//
// GetByID y GetBySlug devuelven solo filas activas: una empresa con borrado
// lógico equivale a inexistente para este núcleo, salvo en List con
// includeInactive=true (uso exclusivo de superadmin).
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, scope access.Filter, includeInactive bool, limit, offset int) ([]*entity.Company, error)
	// SoftDelete marca la empresa como inactiva. Devuelve false si no había
	// fila activa que borrar.
	SoftDelete(ctx context.Context, id string) (bool, error)
}
