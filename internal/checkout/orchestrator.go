package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/cart"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/domain"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/orders"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/pricing"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/repository"
	"github.com/vishaldhakal/nisimatsuya-sub001/pkg/errors"
)

// Submitter posts an order request to the order API
type Submitter interface {
	Submit(ctx context.Context, order orders.OrderRequest, idempotencyKey string) (string, error)
}

// Orchestrator coordinates the checkout flow: form state, validation,
// submission, and confirmation. States move EmptyCart -> FormEntry ->
// Submitting -> Complete; FormEntry loops back to itself on validation
// failure and Submitting falls back to FormEntry on submission failure
// with the form preserved so the customer can retry.
//
// The orchestrator models one checkout session, and the session spans
// the process lifetime: Complete is terminal, so after a successful
// checkout every further submit is rejected until the server restarts.
type Orchestrator struct {
	mu     sync.Mutex
	cart   *cart.Store
	client Submitter
	repos  *repository.Repositories // optional order history; may be nil
	logger *zap.Logger

	form           domain.CheckoutForm
	fieldErrors    map[string]string
	submitting     bool
	confirmation   *domain.OrderConfirmation
	cancelSubmit   context.CancelFunc
	useIdemKeys    bool
	idempotencyKey string
}

// NewOrchestrator creates a checkout orchestrator
func NewOrchestrator(cartStore *cart.Store, client Submitter, repos *repository.Repositories, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		cart:   cartStore,
		client: client,
		repos:  repos,
		logger: logger,
	}
}

// EnableIdempotencyKeys attaches a per-session idempotency key to
// submissions so that a retry after a network timeout cannot create a
// duplicate order server-side. Off by default: without it submission
// carries no exactly-once guarantee.
func (o *Orchestrator) EnableIdempotencyKeys() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.useIdemKeys = true
}

// State reports the current checkout phase. EmptyCart is reported
// whenever the cart has no items and the flow is not complete.
func (o *Orchestrator) State() domain.CheckoutState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stateLocked()
}

func (o *Orchestrator) stateLocked() domain.CheckoutState {
	switch {
	case o.confirmation != nil:
		return domain.CheckoutStateComplete
	case o.submitting:
		return domain.CheckoutStateSubmitting
	case o.cart.Len() == 0:
		return domain.CheckoutStateEmptyCart
	default:
		return domain.CheckoutStateFormEntry
	}
}

// SetForm replaces the checkout form. Validation errors are cleared for
// every field whose value changed, matching the per-field clearing the
// customer sees while editing.
func (o *Orchestrator) SetForm(next domain.CheckoutForm) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fieldErrors != nil {
		clearEditedFieldErrors(o.form, next, o.fieldErrors)
	}
	o.form = next
}

// Form returns the current form values
func (o *Orchestrator) Form() domain.CheckoutForm {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.form
}

// FieldErrors returns a copy of the current validation error set
func (o *Orchestrator) FieldErrors() map[string]string {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make(map[string]string, len(o.fieldErrors))
	for k, v := range o.fieldErrors {
		out[k] = v
	}
	return out
}

// Confirmation returns the order confirmation, or nil before Complete
func (o *Orchestrator) Confirmation() *domain.OrderConfirmation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.confirmation
}

// Submit validates the form and posts the order. On validation failure
// the flow stays in FormEntry with the error set populated. On
// submission failure the form is preserved unchanged for a retry. On
// success the cart is cleared, the confirmation is stored, and the flow
// is Complete for the rest of the session.
func (o *Orchestrator) Submit(ctx context.Context) (*domain.OrderConfirmation, error) {
	o.mu.Lock()

	if o.submitting {
		o.mu.Unlock()
		return nil, &errors.ErrConflict{Message: "a submission is already in progress"}
	}

	state := o.stateLocked()
	if !state.CanTransitionTo(domain.CheckoutStateSubmitting) {
		o.mu.Unlock()
		return nil, &errors.ErrInvalidStateTransition{From: state, To: domain.CheckoutStateSubmitting}
	}

	// Error set is recomputed wholesale on every attempt
	fieldErrors := Validate(o.form)
	if len(fieldErrors) > 0 {
		o.fieldErrors = fieldErrors
		o.mu.Unlock()
		return nil, &errors.ErrValidation{Fields: fieldErrors}
	}
	o.fieldErrors = nil

	// Request is built once and sent exactly once per attempt
	quote := pricing.QuoteFor(o.cart.Subtotal())
	items := o.cart.Items()
	req := orders.BuildOrderRequest(o.form, quote, items)

	idemKey := ""
	if o.useIdemKeys {
		if o.idempotencyKey == "" {
			o.idempotencyKey = uuid.NewString()
		}
		idemKey = o.idempotencyKey
	}

	submitCtx, cancel := context.WithCancel(ctx)
	o.submitting = true
	o.cancelSubmit = cancel
	form := o.form
	o.mu.Unlock()

	orderNumber, err := o.client.Submit(submitCtx, req, idemKey)
	cancel()

	o.mu.Lock()
	defer o.mu.Unlock()
	o.submitting = false
	o.cancelSubmit = nil

	if err != nil {
		// Back to FormEntry; form values and error set stay untouched
		o.logger.Error("Order submission failed", zap.Error(err))
		return nil, err
	}

	conf := o.buildConfirmation(orderNumber, form, quote, items)
	o.confirmation = conf
	o.cart.Clear()
	o.form = domain.CheckoutForm{}
	o.fieldErrors = nil
	o.idempotencyKey = ""

	if o.repos != nil {
		if err := o.saveConfirmation(ctx, conf); err != nil {
			o.logger.Warn("Failed to persist order confirmation", zap.Error(err),
				zap.String("order_number", conf.OrderNumber))
		}
	}

	o.logger.Info("Checkout complete", zap.String("order_number", conf.OrderNumber))
	return conf, nil
}

// Abandon cancels an in-flight submission. The request may still
// complete server-side; nothing of it becomes visible in this session.
func (o *Orchestrator) Abandon() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancelSubmit != nil {
		o.cancelSubmit()
	}
}

func (o *Orchestrator) buildConfirmation(orderNumber string, form domain.CheckoutForm, quote pricing.Quote, items []domain.CartLineItem) *domain.OrderConfirmation {
	now := time.Now()
	order := domain.Order{
		ID:              uuid.New(),
		OrderNumber:     orderNumber,
		CustomerName:    form.FullName,
		Email:           form.Email,
		Phone:           form.Phone,
		ShippingAddress: form.Address,
		City:            form.City,
		State:           form.State,
		ZipCode:         form.PostalCode,
		TotalAmount:     quote.Total,
		DeliveryFee:     quote.ShippingFee,
		PaymentMethod:   form.PaymentMethod,
		Status:          domain.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		oi := domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			CreatedAt: now,
		}
		if item.ThumbnailRef != "" {
			thumb := item.ThumbnailRef
			oi.ThumbnailRef = &thumb
		}
		orderItems = append(orderItems, oi)
	}

	return &domain.OrderConfirmation{
		OrderNumber: orderNumber,
		Order:       order,
		Items:       orderItems,
		CreatedAt:   now,
	}
}

func (o *Orchestrator) saveConfirmation(ctx context.Context, conf *domain.OrderConfirmation) error {
	order := conf.Order
	if err := o.repos.Order.Create(ctx, &order); err != nil {
		return err
	}

	items := make([]*domain.OrderItem, 0, len(conf.Items))
	for i := range conf.Items {
		items = append(items, &conf.Items[i])
	}
	return o.repos.OrderItem.CreateBatch(ctx, items)
}

// clearEditedFieldErrors removes the validation error for every field
// whose value differs between prev and next
func clearEditedFieldErrors(prev, next domain.CheckoutForm, errs map[string]string) {
	if prev.FullName != next.FullName {
		delete(errs, "fullName")
	}
	if prev.Email != next.Email {
		delete(errs, "email")
	}
	if prev.Phone != next.Phone {
		delete(errs, "phone")
	}
	if prev.Address != next.Address {
		delete(errs, "address")
	}
	if prev.City != next.City {
		delete(errs, "city")
	}
	if prev.State != next.State {
		delete(errs, "state")
	}
	if prev.PostalCode != next.PostalCode {
		delete(errs, "postalCode")
	}
	if prev.PaymentMethod != next.PaymentMethod {
		delete(errs, "paymentMethod")
	}
	if prev.CardNumber != next.CardNumber {
		delete(errs, "cardNumber")
	}
	if prev.CardHolderName != next.CardHolderName {
		delete(errs, "cardHolderName")
	}
	if prev.Expiry != next.Expiry {
		delete(errs, "expiry")
	}
	if prev.CVV != next.CVV {
		delete(errs, "cvv")
	}
}
