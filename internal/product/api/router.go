package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ridloal/product-service/internal/platform/middleware"
)

// NewRouter builds the gin engine serving /healthz and /api/products.
func NewRouter(h *ProductHandler) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())
	router.RedirectTrailingSlash = false

	h.RegisterHealth(router)
	h.RegisterRoutes(router.Group("/api"))
	return router
}
