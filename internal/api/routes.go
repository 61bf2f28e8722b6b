package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes. metrics may be nil.
func SetupRoutes(router *gin.Engine, handler *Handler, metrics http.Handler) {
	router.GET("/health", handler.HealthCheck)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	api := router.Group("/api")
	{
		api.POST("/scrape", handler.Scrape) // POST /api/scrape

		products := api.Group("/products")
		{
			products.GET("", handler.ListProducts)      // GET /api/products
			products.GET("/lookup", handler.GetProduct) // GET /api/products/lookup?url=
			products.DELETE("", handler.DeleteProduct)  // DELETE /api/products?url=
		}

		cache := api.Group("/cache")
		{
			cache.GET("", handler.CacheStats)    // GET /api/cache
			cache.DELETE("", handler.ClearCache) // DELETE /api/cache
		}
	}
}
