package ingredient

import (
	"context"
	"strings"

	"food-scanner/internal/infrastructure/repository"
	"food-scanner/internal/pkg/common"
)

// Service 參考食材維護服務
type Service struct {
	ingredients repository.IngredientRepository
}

// NewService 創建食材服務
func NewService(ingredients repository.IngredientRepository) *Service {
	return &Service{ingredients: ingredients}
}

// CreateRequest 新增食材請求
type CreateRequest struct {
	Name      string   `json:"name" binding:"required"`
	Vegan     *bool    `json:"vegan"`
	Allergens []string `json:"allergens"`
}

// Create 新增參考食材，名稱與過敏原標籤一律轉小寫
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*common.Ingredient, error) {
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, common.NewValidationError("ingredient name is required")
	}

	// vegan 未指定時預設為 true
	vegan := true
	if req.Vegan != nil {
		vegan = *req.Vegan
	}

	allergens := []string{}
	for _, allergen := range req.Allergens {
		if tag := strings.ToLower(strings.TrimSpace(allergen)); tag != "" {
			allergens = append(allergens, tag)
		}
	}

	ing := &common.Ingredient{
		Name:      name,
		Vegan:     vegan,
		Allergens: allergens,
	}
	if err := s.ingredients.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// List 列出全部參考食材
func (s *Service) List(ctx context.Context) ([]common.Ingredient, error) {
	return s.ingredients.List(ctx)
}
