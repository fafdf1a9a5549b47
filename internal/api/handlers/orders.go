package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/domain"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/repository"
	"github.com/vishaldhakal/nisimatsuya-sub001/pkg/errors"
)

// OrderResponse represents an order from the local history store
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerName    string              `json:"customer_name"`
	Email           string              `json:"email,omitempty"`
	Phone           string              `json:"phone_number,omitempty"`
	ShippingAddress string              `json:"shipping_address"`
	City            string              `json:"city"`
	State           string              `json:"state"`
	ZipCode         string              `json:"zip_code"`
	TotalAmount     float64             `json:"total_amount"`
	DeliveryFee     float64             `json:"delivery_fee"`
	PaymentMethod   string              `json:"payment_method"`
	Status          domain.OrderStatus  `json:"status"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	CreatedAt       string              `json:"created_at"`
}

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Thumbnail *string `json:"thumbnail,omitempty"`
}

func buildOrderResponse(order *domain.Order, items []*domain.OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID.String(),
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		Email:           order.Email,
		Phone:           order.Phone,
		ShippingAddress: order.ShippingAddress,
		City:            order.City,
		State:           order.State,
		ZipCode:         order.ZipCode,
		TotalAmount:     order.TotalAmount,
		DeliveryFee:     order.DeliveryFee,
		PaymentMethod:   string(order.PaymentMethod),
		Status:          order.Status,
		CreatedAt:       order.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
			Thumbnail: item.ThumbnailRef,
		})
	}
	return resp
}

// HandleListOrders handles GET /api/orders
func HandleListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit < 1 || limit > 100 {
			limit = 20
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		orders, err := repos.Order.List(c.Request.Context(), limit, offset)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		out := make([]OrderResponse, 0, len(orders))
		for _, order := range orders {
			out = append(out, buildOrderResponse(order, nil))
		}
		c.JSON(http.StatusOK, gin.H{
			"orders": out,
			"limit":  limit,
			"offset": offset,
		})
	}
}

// HandleGetOrder handles GET /api/orders/:number
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Param("number")

		order, err := repos.Order.GetByOrderNumber(c.Request.Context(), orderNumber)
		if err != nil {
			if _, isNotFound := err.(*errors.ErrNotFound); isNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err), zap.String("order_number", orderNumber))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		items, err := repos.OrderItem.GetByOrderID(c.Request.Context(), order.ID)
		if err != nil {
			logger.Error("Failed to get order items", zap.Error(err), zap.String("order_number", orderNumber))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, buildOrderResponse(order, items))
	}
}
