package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/application/usecase"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/design"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/designcode"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/product"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/share"
)

// statusFor 將領域錯誤對應到 HTTP 狀態碼
func statusFor(err error) int {
	switch {
	case errors.Is(err, designcode.ErrInvalidCode),
		errors.Is(err, design.ErrInvalidDesign),
		errors.Is(err, share.ErrInvalidRecipient),
		errors.Is(err, usecase.ErrUnknownCategory):
		return http.StatusBadRequest
	case errors.Is(err, design.ErrNotFound),
		errors.Is(err, product.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrCodeExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError 統一輸出錯誤回應，伺服器錯誤不回傳內部細節
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "伺服器內部錯誤"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
