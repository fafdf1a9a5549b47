package domain

// PaymentMethod represents the payment option selected at checkout
type PaymentMethod string

const (
	PaymentCardVisa       PaymentMethod = "card-visa"
	PaymentCardMastercard PaymentMethod = "card-mastercard"
	PaymentApplePay       PaymentMethod = "apple"
	PaymentGooglePay      PaymentMethod = "google"
	PaymentPaypal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash-on-delivery"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCardVisa,
		PaymentCardMastercard,
		PaymentApplePay,
		PaymentGooglePay,
		PaymentPaypal,
		PaymentCashOnDelivery:
		return true
	default:
		return false
	}
}

// RequiresCard reports whether card fields must be validated for this method
func (m PaymentMethod) RequiresCard() bool {
	return m == PaymentCardVisa || m == PaymentCardMastercard
}

// OrderStatus represents the status of a submitted order
type OrderStatus string

const (
	// PENDING - Submitted, awaiting processing
	OrderStatusPending OrderStatus = "pending"
	// PROCESSING - Accepted by the store
	OrderStatusProcessing OrderStatus = "processing"
	// SHIPPED - Handed to the carrier
	OrderStatusShipped OrderStatus = "shipped"
	// DELIVERED - Received by the customer
	OrderStatusDelivered OrderStatus = "delivered"
	// CANCELLED - Cancelled before fulfillment
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CheckoutState represents the phase of the checkout flow
type CheckoutState string

const (
	// EMPTY_CART - Nothing to check out; entered whenever the cart has no items
	CheckoutStateEmptyCart CheckoutState = "EMPTY_CART"
	// FORM_ENTRY - Customer is filling the checkout form
	CheckoutStateFormEntry CheckoutState = "FORM_ENTRY"
	// SUBMITTING - Order request is in flight
	CheckoutStateSubmitting CheckoutState = "SUBMITTING"
	// COMPLETE - Order confirmed; terminal for the session
	CheckoutStateComplete CheckoutState = "COMPLETE"
)

// IsValid checks if the checkout state is valid
func (s CheckoutState) IsValid() bool {
	switch s {
	case CheckoutStateEmptyCart,
		CheckoutStateFormEntry,
		CheckoutStateSubmitting,
		CheckoutStateComplete:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a checkout state transition is valid
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	switch s {
	case CheckoutStateEmptyCart:
		// Exits only when an item is added elsewhere in the app
		return next == CheckoutStateFormEntry
	case CheckoutStateFormEntry:
		return next == CheckoutStateSubmitting ||
			next == CheckoutStateEmptyCart ||
			next == CheckoutStateFormEntry // validation failure loops back
	case CheckoutStateSubmitting:
		return next == CheckoutStateComplete ||
			next == CheckoutStateFormEntry
	case CheckoutStateComplete:
		return false // Terminal state
	default:
		return false
	}
}
