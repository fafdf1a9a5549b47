package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/domain"
	"github.com/vishaldhakal/nisimatsuya-sub001/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order history repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			id, order_number, customer_name, email, phone, shipping_address,
			city, state, zip_code, total_amount, delivery_fee, payment_method,
			status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.OrderNumber,
		order.CustomerName,
		order.Email,
		order.Phone,
		order.ShippingAddress,
		order.City,
		order.State,
		order.ZipCode,
		order.TotalAmount,
		order.DeliveryFee,
		order.PaymentMethod,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `
		SELECT id, order_number, customer_name, email, phone, shipping_address,
			city, state, zip_code, total_amount, delivery_fee, payment_method,
			status, created_at, updated_at
		FROM orders
		WHERE order_number = $1
		LIMIT 1
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, orderNumber).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerName,
		&order.Email,
		&order.Phone,
		&order.ShippingAddress,
		&order.City,
		&order.State,
		&order.ZipCode,
		&order.TotalAmount,
		&order.DeliveryFee,
		&order.PaymentMethod,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: orderNumber}
	}
	if err != nil {
		r.logger.Error("Failed to get order by order number", zap.Error(err), zap.String("order_number", orderNumber))
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	query := `
		SELECT id, order_number, customer_name, email, phone, shipping_address,
			city, state, zip_code, total_amount, delivery_fee, payment_method,
			status, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.CustomerName,
			&order.Email,
			&order.Phone,
			&order.ShippingAddress,
			&order.City,
			&order.State,
			&order.ZipCode,
			&order.TotalAmount,
			&order.DeliveryFee,
			&order.PaymentMethod,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}

	return orders, rows.Err()
}
