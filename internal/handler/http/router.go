package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes 註冊所有 HTTP 路由
func SetupRoutes(r gin.IRouter, dh *DesignHandler, ph *ProductHandler) {
	// 基礎健康檢查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/codes", dh.NewCode)

	designs := r.Group("/designs")
	designs.POST("", dh.Save)
	designs.GET("", dh.ListByEmail)
	designs.GET("/last", dh.Last)
	designs.GET("/:code", dh.Resume)
	designs.GET("/:code/quote", dh.Quote)
	designs.POST("/:code/share", dh.Share)

	products := r.Group("/products")
	products.GET("", ph.List)
	products.GET("/:id", ph.Get)
}
