package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/google/uuid"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	categoryType := domain.CategoryType(req.Type)
	if !categoryType.IsValid() {
		return nil, apperrors.NewValidationError("type must be income or expense")
	}
	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = domain.DefaultCategoryColor
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Type:        categoryType,
		Color:       color,
		IconURL:     strings.TrimSpace(req.IconURL),
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("user_id", userID))
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context, userID string, params dto.ListCategoriesParams) ([]domain.Category, error) {
	var categoryType *domain.CategoryType
	if params.Type != "" {
		t := domain.CategoryType(params.Type)
		categoryType = &t
	}
	return s.categoryRepo.ListCategories(ctx, userID, categoryType)
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty")
		}
		category.Name = name
	}
	if req.Color != nil {
		category.Color = strings.TrimSpace(*req.Color)
	}
	if req.IconURL != nil {
		category.IconURL = strings.TrimSpace(*req.IconURL)
	}
	category.LastUpdatedAt = time.Now()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if err := s.categoryRepo.DeleteCategory(ctx, userID, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return err
	}
	return nil
}

func (s *categoryService) SeedDefaultCategories(ctx context.Context, userID string) error {
	now := time.Now()
	categories := make([]domain.Category, len(domain.DefaultExpenseCategories))
	for i, c := range domain.DefaultExpenseCategories {
		c.CategoryID = uuid.NewString()
		c.UserID = userID
		c.AuditFields = domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}
		categories[i] = c
	}
	if err := s.categoryRepo.SaveCategories(ctx, categories); err != nil {
		s.LogError(ctx, err, "Failed to seed default categories", slog.String("user_id", userID))
		return err
	}
	return nil
}
