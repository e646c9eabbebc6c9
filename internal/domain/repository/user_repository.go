package repository

import (
	"context"

	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
)

// UserListFilter parámetros de listado de usuarios. OnlyManagers restringe el
// listado a managers (un owner nunca lista otros owners ni superadmins).
type UserListFilter struct {
	Scope        access.Filter
	OnlyManagers bool
}

// UserRepository define el puerto de persistencia para User.
// GetByID y FindByEmail devuelven solo filas activas.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// EmailExists informa si otro usuario activo ya usa el email (excludeID
	// permite excluir al propio usuario en updates).
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, f UserListFilter) ([]*entity.User, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}
