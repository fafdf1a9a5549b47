package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartLineItem represents one product entry in the shopping cart
type CartLineItem struct {
	ProductID    string
	Name         string
	UnitPrice    float64
	Quantity     int
	ThumbnailRef string
}

// CheckoutForm holds the checkout form fields as entered by the customer.
// Created empty at checkout start, discarded after a successful submission.
type CheckoutForm struct {
	FullName        string
	Email           string
	Phone           string
	Address         string
	City            string
	State           string
	PostalCode      string
	PaymentMethod   PaymentMethod
	CardNumber      string
	CardHolderName  string
	Expiry          string // MM/YY
	CVV             string
	SavePaymentInfo bool
}

// OrderConfirmation is the terminal result of a checkout session
type OrderConfirmation struct {
	OrderNumber string
	Order       Order
	Items       []OrderItem
	CreatedAt   time.Time
}

// Order represents a submitted order kept in the local history store
type Order struct {
	ID              uuid.UUID
	OrderNumber     string
	CustomerName    string
	Email           string
	Phone           string
	ShippingAddress string
	City            string
	State           string
	ZipCode         string
	TotalAmount     float64
	DeliveryFee     float64
	PaymentMethod   PaymentMethod
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem represents an item in a submitted order
type OrderItem struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    string
	Name         string
	UnitPrice    float64
	Quantity     int
	ThumbnailRef *string
	CreatedAt    time.Time
}
