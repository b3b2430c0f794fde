package user

import (
	"net/http"

	"food-scanner/internal/api/handlers"
	"food-scanner/internal/api/middleware"
	"food-scanner/internal/core/user"
	"food-scanner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler 使用者偏好設定處理器
type Handler struct {
	users *user.Service
}

// NewHandler 創建使用者處理器
func NewHandler(userService *user.Service) *Handler {
	return &Handler{users: userService}
}

// GetProfile 取得使用者資料
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.users.Get(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile 更新偏好設定
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req user.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.WriteError(c, common.NewValidationError("invalid profile payload"))
		return
	}

	profile, err := h.users.UpdateProfile(c.Request.Context(), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
