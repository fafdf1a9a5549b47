package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/catalog"
)

const jsonContentType = "application/json"

// HandleListProducts handles GET /api/products
func HandleListProducts(client *catalog.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))

		raw, err := client.ListProducts(c.Request.Context(), c.Query("category"), page)
		if err != nil {
			logger.Error("Failed to fetch products", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "store API unavailable"})
			return
		}
		c.Data(http.StatusOK, jsonContentType, raw)
	}
}

// HandleGetProduct handles GET /api/products/:id
func HandleGetProduct(client *catalog.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := client.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			logger.Error("Failed to fetch product", zap.Error(err), zap.String("id", c.Param("id")))
			c.JSON(http.StatusBadGateway, gin.H{"error": "store API unavailable"})
			return
		}
		c.Data(http.StatusOK, jsonContentType, raw)
	}
}

// HandleListBlogs handles GET /api/blogs
func HandleListBlogs(client *catalog.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := client.ListBlogs(c.Request.Context())
		if err != nil {
			logger.Error("Failed to fetch blogs", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "store API unavailable"})
			return
		}
		c.Data(http.StatusOK, jsonContentType, raw)
	}
}

// HandleListTestimonials handles GET /api/testimonials
func HandleListTestimonials(client *catalog.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := client.ListTestimonials(c.Request.Context())
		if err != nil {
			logger.Error("Failed to fetch testimonials", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "store API unavailable"})
			return
		}
		c.Data(http.StatusOK, jsonContentType, raw)
	}
}
