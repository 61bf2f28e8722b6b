package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"toolscout/internal/domain"
	"toolscout/internal/scraper"
	"toolscout/internal/storage"
)

// Handler handles HTTP requests for the scrape API.
type Handler struct {
	scraper scraper.Scraper
	repo    storage.Repository
	log     logrus.FieldLogger
}

// NewHandler creates a new API handler.
func NewHandler(s scraper.Scraper, repo storage.Repository, logger logrus.FieldLogger) *Handler {
	return &Handler{
		scraper: s,
		repo:    repo,
		log:     logger.WithField("component", "api"),
	}
}

// Scrape handles POST /api/scrape
func (h *Handler) Scrape(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "URL is required"})
		return
	}
	useCache := req.UseCache == nil || *req.UseCache

	meta, err := h.scraper.Scrape(c.Request.Context(), req.URL, useCache)
	if err != nil {
		status, message := scrapeErrorStatus(err)
		h.log.WithError(err).WithFields(logrus.Fields{
			"url":    req.URL,
			"status": status,
		}).Warn("Scrape request failed")
		c.JSON(status, ErrorResponse{Error: message})
		return
	}

	resp := ScrapeResponse{Metadata: meta}
	if req.Save {
		product := domain.NewProduct(meta, 0)
		if err := h.repo.SaveProduct(c.Request.Context(), product); err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save product"})
			return
		}
		resp.Product = &product
	}
	c.JSON(http.StatusOK, resp)
}

// ListProducts handles GET /api/products
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.repo.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list products"})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, ProductsResponse{Products: products, Total: len(products)})
}

// GetProduct handles GET /api/products/lookup?url=
func (h *Handler) GetProduct(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "URL is required"})
		return
	}

	product, err := h.repo.GetProduct(c.Request.Context(), target)
	if errors.Is(err, storage.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products?url=
func (h *Handler) DeleteProduct(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "URL is required"})
		return
	}
	if err := h.repo.DeleteProduct(c.Request.Context(), target); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete product"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CacheStats handles GET /api/cache
func (h *Handler) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, CacheResponse{Size: h.scraper.CacheSize()})
}

// ClearCache handles DELETE /api/cache
func (h *Handler) ClearCache(c *gin.Context) {
	h.scraper.ClearCache()
	c.JSON(http.StatusOK, CacheResponse{Size: h.scraper.CacheSize()})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func scrapeErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, scraper.ErrInvalidURL):
		return http.StatusBadRequest, "Invalid URL format"
	case errors.Is(err, scraper.ErrTimeout):
		return http.StatusGatewayTimeout, err.Error()
	default:
		return http.StatusBadGateway, err.Error()
	}
}
