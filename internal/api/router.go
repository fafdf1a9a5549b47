package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/api/handlers"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/cart"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/catalog"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/checkout"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/config"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	cartStore *cart.Store,
	orch *checkout.Orchestrator,
	content *catalog.Client,
	repos *repository.Repositories,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Nisimatsuya Checkout API",
			"endpoints": []string{
				"GET /health",
				"GET /api/cart",
				"POST /api/cart/items",
				"PATCH /api/cart/items/:id",
				"DELETE /api/cart/items/:id",
				"GET /api/checkout",
				"POST /api/checkout",
				"POST /api/checkout/abandon",
				"GET /api/orders",
				"GET /api/orders/:number",
				"GET /api/products",
				"GET /api/blogs",
				"GET /api/testimonials",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/cart", handlers.HandleGetCart(cartStore, logger))
		api.POST("/cart/items", handlers.HandleAddCartItem(cartStore, logger))
		api.PATCH("/cart/items/:id", handlers.HandleUpdateCartItem(cartStore, logger))
		api.DELETE("/cart/items/:id", handlers.HandleRemoveCartItem(cartStore, logger))

		api.GET("/checkout", handlers.HandleCheckoutState(orch, logger))
		api.POST("/checkout", handlers.HandleCheckoutSubmit(orch, logger))
		api.POST("/checkout/abandon", handlers.HandleCheckoutAbandon(orch, logger))

		api.GET("/orders", handlers.HandleListOrders(repos, logger))
		api.GET("/orders/:number", handlers.HandleGetOrder(repos, logger))

		api.GET("/products", handlers.HandleListProducts(content, logger))
		api.GET("/products/:id", handlers.HandleGetProduct(content, logger))
		api.GET("/blogs", handlers.HandleListBlogs(content, logger))
		api.GET("/testimonials", handlers.HandleListTestimonials(content, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
