package ingredient

import (
	"net/http"

	"food-scanner/internal/api/handlers"
	"food-scanner/internal/core/ingredient"
	"food-scanner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler 參考食材維護處理器
type Handler struct {
	ingredients *ingredient.Service
}

// NewHandler 創建食材處理器
func NewHandler(ingredientService *ingredient.Service) *Handler {
	return &Handler{ingredients: ingredientService}
}

// Create 新增參考食材
func (h *Handler) Create(c *gin.Context) {
	var req ingredient.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.WriteError(c, common.NewValidationError("ingredient name is required"))
		return
	}

	ing, err := h.ingredients.Create(c.Request.Context(), &req)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ing)
}

// List 列出全部參考食材
func (h *Handler) List(c *gin.Context) {
	ingredients, err := h.ingredients.List(c.Request.Context())
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}
