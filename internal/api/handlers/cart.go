package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/cart"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/domain"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/pricing"
)

// AddCartItemRequest represents the add-to-cart payload
type AddCartItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"required,min=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Thumbnail string  `json:"thumbnail,omitempty"`
}

// UpdateCartItemRequest represents the quantity update payload.
// A quantity of zero removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartResponse represents the cart with its derived totals
type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	Subtotal    float64            `json:"subtotal"`
	DeliveryFee float64            `json:"delivery_fee"`
	TotalAmount float64            `json:"total_amount"`
}

type CartItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Thumbnail string  `json:"thumbnail,omitempty"`
}

func buildCartResponse(cartStore *cart.Store) CartResponse {
	items := cartStore.Items()
	quote := pricing.QuoteFor(cartStore.Subtotal())

	resp := CartResponse{
		Items:       make([]CartItemResponse, 0, len(items)),
		Subtotal:    quote.Subtotal,
		DeliveryFee: quote.ShippingFee,
		TotalAmount: quote.Total,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
			Thumbnail: item.ThumbnailRef,
		})
	}
	return resp
}

// HandleGetCart handles GET /api/cart
func HandleGetCart(cartStore *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, buildCartResponse(cartStore))
	}
}

// HandleAddCartItem handles POST /api/cart/items
func HandleAddCartItem(cartStore *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		item := domain.CartLineItem{
			ProductID:    req.ProductID,
			Name:         req.Name,
			UnitPrice:    req.Price,
			Quantity:     req.Quantity,
			ThumbnailRef: req.Thumbnail,
		}
		if err := cartStore.Add(item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		logger.Info("Item added to cart",
			zap.String("product_id", req.ProductID),
			zap.Int("quantity", req.Quantity),
		)
		c.JSON(http.StatusOK, buildCartResponse(cartStore))
	}
}

// HandleUpdateCartItem handles PATCH /api/cart/items/:id
func HandleUpdateCartItem(cartStore *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		productID := c.Param("id")
		if err := cartStore.UpdateQuantity(productID, *req.Quantity); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, buildCartResponse(cartStore))
	}
}

// HandleRemoveCartItem handles DELETE /api/cart/items/:id
func HandleRemoveCartItem(cartStore *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")
		if err := cartStore.Remove(productID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, buildCartResponse(cartStore))
	}
}
