package repository

import (
	"context"

	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
)

// CategoryRepository catálogo de categorías (solo lectura para la API).
type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	GetByID(ctx context.Context, id string) (*entity.Category, error)
}
