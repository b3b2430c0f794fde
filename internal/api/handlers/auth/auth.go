package auth

import (
	"net/http"

	"food-scanner/internal/api/handlers"
	"food-scanner/internal/core/auth"
	"food-scanner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler 認證處理器
type Handler struct {
	auth *auth.Service
}

// NewHandler 創建認證處理器
func NewHandler(authService *auth.Service) *Handler {
	return &Handler{auth: authService}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *common.User `json:"user"`
}

// Register 註冊新帳號
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.WriteError(c, common.NewValidationError("email and password are required"))
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// Login 登入
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.WriteError(c, common.NewValidationError("email and password are required"))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}
