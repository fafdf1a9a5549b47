package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/domain"
)

// OrderRepository defines order history data access methods
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Order, error)
}

// OrderItemRepository defines order item data access methods
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []*domain.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	Order     OrderRepository
	OrderItem OrderItemRepository
}
