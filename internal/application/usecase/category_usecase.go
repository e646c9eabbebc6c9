package usecase

import (
	"context"

	"github.com/tu-usuario/ofertas-pro/internal/application/dto"
	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
)

// CategoryUseCase catálogo de categorías. Lectura pública, sin alcance.
type CategoryUseCase struct {
	categories repository.CategoryRepository
}

func NewCategoryUseCase(categories repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories}
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, domain.Dependency("listado de categorías", err)
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CategoryResponse{ID: c.ID, Name: c.Name, IconName: c.IconName})
	}
	return items, nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Dependency("consulta de categoría", err)
	}
	if c == nil {
		return nil, domain.NotFound("categoría")
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, IconName: c.IconName}, nil
}
