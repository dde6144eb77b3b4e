package services

import (
	"context"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/dto"
)

// CategorySvcFacade defines category operations
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string, params dto.ListCategoriesParams) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
	// SeedDefaultCategories gives a new user the starter expense categories.
	SeedDefaultCategories(ctx context.Context, userID string) error
}
