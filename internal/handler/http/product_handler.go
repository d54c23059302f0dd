package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/application/usecase"
)

// ProductHandler 處理產品型錄相關的 HTTP 請求
type ProductHandler struct {
	productUC *usecase.ProductUseCase
}

// NewProductHandler 建立新的 ProductHandler
func NewProductHandler(puc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUC: puc,
	}
}

// List 列出產品，可用 ?category= 篩選
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productUC.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get 獲取單一產品
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.productUC.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
