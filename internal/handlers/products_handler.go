package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"storefront-catalog-service/internal/services"
)

// ProductsHandler handles the read-only storefront product endpoints
type ProductsHandler struct {
	catalog *services.CatalogService
}

// NewProductsHandler creates a new products handler
func NewProductsHandler(catalog *services.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalog}
}

// List returns the main product listing (in-stock, featured first, max 50)
func (h *ProductsHandler) List(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))
	products := h.catalog.ListProducts(c.Request.Context(), limit)
	c.JSON(http.StatusOK, products)
}

// ListByCategory returns up to 8 in-stock products of one category
func (h *ProductsHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")
	limit := parseLimit(c.Query("limit"))
	products := h.catalog.ListByCategory(c.Request.Context(), category, limit)
	c.JSON(http.StatusOK, products)
}

// Featured returns products flagged as featured during normalization
func (h *ProductsHandler) Featured(c *gin.Context) {
	products, err := h.catalog.FeaturedProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch featured products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// AlmostSoldOut returns products nearly out of stock
func (h *ProductsHandler) AlmostSoldOut(c *gin.Context) {
	products, err := h.catalog.AlmostSoldOutProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch almost sold out products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get returns a single product by supplier reference
func (h *ProductsHandler) Get(c *gin.Context) {
	reference := c.Param("reference")
	product, err := h.catalog.GetProduct(c.Request.Context(), reference)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Categories returns the categories that currently have stock
func (h *ProductsHandler) Categories(c *gin.Context) {
	categories := h.catalog.Categories(c.Request.Context())
	c.JSON(http.StatusOK, categories)
}

func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
