package dto

import "github.com/Aquaier/Savoo/internal/core/domain"

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Type    string `json:"type" binding:"required,oneof=income expense"`
	Color   string `json:"color" binding:"omitempty,max=20"`
	IconURL string `json:"iconURL" binding:"omitempty,url"`
}

// UpdateCategoryRequest defines the category fields that may change.
type UpdateCategoryRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	Color   *string `json:"color" binding:"omitempty,max=20"`
	IconURL *string `json:"iconURL" binding:"omitempty,url"`
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Type string `form:"type" binding:"omitempty,oneof=income expense"`
}

// CategoryResponse defines the category data returned by the API.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Color      string `json:"color"`
	IconURL    string `json:"iconURL"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       string(c.Type),
		Color:      c.Color,
		IconURL:    c.IconURL,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to CategoryResponse DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	resp := make([]CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = ToCategoryResponse(&categories[i])
	}
	return resp
}
