package scan

import (
	"net/http"
	"strconv"

	"food-scanner/internal/api/handlers"
	"food-scanner/internal/api/middleware"
	"food-scanner/internal/core/scan"
	"food-scanner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler 掃描處理器
type Handler struct {
	scans *scan.Service
}

// NewHandler 創建掃描處理器
func NewHandler(scanService *scan.Service) *Handler {
	return &Handler{scans: scanService}
}

type scanRequest struct {
	Ingredients []string `json:"ingredients"`
}

// Scan 提交食材清單並取得安全評估
func (h *Handler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Ingredients) == 0 {
		handlers.WriteError(c, common.ErrIngredientsRequired)
		return
	}

	resp, err := h.scans.Evaluate(c.Request.Context(), c.GetString(middleware.ContextUserID), req.Ingredients)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History 分頁查詢掃描歷史
func (h *Handler) History(c *gin.Context) {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), 10)

	history, err := h.scans.History(c.Request.Context(), c.GetString(middleware.ContextUserID), page, limit)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// ToggleSave 切換收藏狀態
func (h *Handler) ToggleSave(c *gin.Context) {
	saved, err := h.scans.ToggleSave(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"))
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scanId": c.Param("id"), "isSaved": saved})
}

// Saved 查詢收藏的掃描
func (h *Handler) Saved(c *gin.Context) {
	scans, err := h.scans.Saved(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scans": scans})
}

// Delete 刪除掃描
func (h *Handler) Delete(c *gin.Context) {
	if err := h.scans.Delete(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id")); err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// parsePositiveInt 解析正整數查詢參數，非法值回退預設
func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
