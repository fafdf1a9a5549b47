package pricing

// Shipping rule: orders at or above the threshold ship free, everything
// else pays the flat fee.
const (
	FreeShippingThreshold = 499.0
	FlatShippingFee       = 99.0
)

// Quote is the priced view of a cart at a point in time. It is derived
// from the subtotal on every call and never cached across cart mutations.
type Quote struct {
	Subtotal    float64
	ShippingFee float64
	Total       float64
}

// QuoteFor computes the shipping fee and order total for a cart subtotal
func QuoteFor(subtotal float64) Quote {
	fee := FlatShippingFee
	if subtotal >= FreeShippingThreshold {
		fee = 0
	}
	return Quote{
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal + fee,
	}
}
