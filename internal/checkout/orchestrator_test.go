package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/cart"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/domain"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/orders"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/session"
	"github.com/vishaldhakal/nisimatsuya-sub001/pkg/errors"
)

type mockSubmitter struct {
	mu          sync.Mutex
	number      string
	err         error
	calls       int
	lastRequest orders.OrderRequest
	lastIdemKey string
	block       chan struct{} // when set, Submit waits until closed
}

func (m *mockSubmitter) Submit(ctx context.Context, req orders.OrderRequest, idemKey string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastRequest = req
	m.lastIdemKey = idemKey
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.err != nil {
		return "", m.err
	}
	return m.number, nil
}

func cartWithItem(t *testing.T, price float64, qty int) *cart.Store {
	t.Helper()
	store := cart.NewStore(nil)
	require.NoError(t, store.Add(domain.CartLineItem{
		ProductID: "p1",
		Name:      "Baby bottle",
		UnitPrice: price,
		Quantity:  qty,
	}))
	return store
}

func TestStateEmptyCart(t *testing.T) {
	orch := NewOrchestrator(cart.NewStore(nil), &mockSubmitter{}, nil, nil)
	assert.Equal(t, domain.CheckoutStateEmptyCart, orch.State())
}

func TestStateFormEntryWhenCartHasItems(t *testing.T) {
	orch := NewOrchestrator(cartWithItem(t, 100, 1), &mockSubmitter{}, nil, nil)
	assert.Equal(t, domain.CheckoutStateFormEntry, orch.State())
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	submitter := &mockSubmitter{number: "ORD123456"}
	orch := NewOrchestrator(cart.NewStore(nil), submitter, nil, nil)
	orch.SetForm(validCODForm())

	_, err := orch.Submit(context.Background())
	require.Error(t, err)

	var transitionErr *errors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.CheckoutStateEmptyCart, transitionErr.From)
	assert.Equal(t, 0, submitter.calls)
}

func TestSubmitValidationFailureStaysInFormEntry(t *testing.T) {
	submitter := &mockSubmitter{number: "ORD123456"}
	orch := NewOrchestrator(cartWithItem(t, 100, 1), submitter, nil, nil)

	form := validCODForm()
	form.Email = "not-an-email"
	orch.SetForm(form)

	_, err := orch.Submit(context.Background())
	require.Error(t, err)

	var validationErr *errors.ErrValidation
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")

	assert.Equal(t, domain.CheckoutStateFormEntry, orch.State())
	assert.Contains(t, orch.FieldErrors(), "email")
	assert.Equal(t, 0, submitter.calls)
	assert.Equal(t, form, orch.Form())
}

func TestSubmitSuccessWithServerOrderNumber(t *testing.T) {
	submitter := &mockSubmitter{number: "ORD123456"}
	cartStore := cartWithItem(t, 300, 2)
	orch := NewOrchestrator(cartStore, submitter, nil, nil)
	orch.SetForm(validCODForm())

	conf, err := orch.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, conf)

	assert.Equal(t, "ORD123456", conf.OrderNumber)
	assert.Equal(t, domain.CheckoutStateComplete, orch.State())
	assert.Equal(t, 0, cartStore.Len(), "cart must be cleared on completion")
	assert.Empty(t, orch.FieldErrors())

	// Request carried the priced cart
	assert.Equal(t, "600.00", submitter.lastRequest.TotalAmount)
	assert.Equal(t, "0.00", submitter.lastRequest.DeliveryFee)
	require.Len(t, submitter.lastRequest.Items, 1)

	// Confirmation snapshot
	assert.Equal(t, 600.0, conf.Order.TotalAmount)
	assert.Equal(t, domain.OrderStatusPending, conf.Order.Status)
	require.Len(t, conf.Items, 1)
	assert.Equal(t, "p1", conf.Items[0].ProductID)

	// Form is discarded after success
	assert.Equal(t, domain.CheckoutForm{}, orch.Form())
}

func TestSubmitFailureReturnsToFormEntry(t *testing.T) {
	submitter := &mockSubmitter{err: &errors.ErrSubmissionFailed{StatusCode: http.StatusBadGateway}}
	cartStore := cartWithItem(t, 100, 1)
	orch := NewOrchestrator(cartStore, submitter, nil, nil)

	form := validCODForm()
	orch.SetForm(form)

	_, err := orch.Submit(context.Background())
	require.Error(t, err)

	var submitErr *errors.ErrSubmissionFailed
	require.ErrorAs(t, err, &submitErr)

	// Back in FormEntry with everything preserved for a retry
	assert.Equal(t, domain.CheckoutStateFormEntry, orch.State())
	assert.Equal(t, form, orch.Form())
	assert.Empty(t, orch.FieldErrors())
	assert.Equal(t, 1, cartStore.Len())
	assert.Nil(t, orch.Confirmation())

	// Retry succeeds
	submitter.err = nil
	submitter.number = "ORD654321"
	conf, err := orch.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ORD654321", conf.OrderNumber)
}

func TestSubmitWhileSubmittingRejected(t *testing.T) {
	block := make(chan struct{})
	submitter := &mockSubmitter{number: "ORD123456", block: block}
	orch := NewOrchestrator(cartWithItem(t, 100, 1), submitter, nil, nil)
	orch.SetForm(validCODForm())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := orch.Submit(context.Background())
		assert.NoError(t, err)
	}()

	// Wait until the first submission is in flight
	require.Eventually(t, func() bool {
		return orch.State() == domain.CheckoutStateSubmitting
	}, 2*time.Second, 10*time.Millisecond)

	_, err := orch.Submit(context.Background())
	var conflictErr *errors.ErrConflict
	require.ErrorAs(t, err, &conflictErr)

	close(block)
	<-done
	assert.Equal(t, domain.CheckoutStateComplete, orch.State())
}

func TestSubmitAfterCompleteRejected(t *testing.T) {
	submitter := &mockSubmitter{number: "ORD123456"}
	cartStore := cartWithItem(t, 100, 1)
	orch := NewOrchestrator(cartStore, submitter, nil, nil)
	orch.SetForm(validCODForm())

	_, err := orch.Submit(context.Background())
	require.NoError(t, err)

	// Even if the cart gains items again, the session is complete
	require.NoError(t, cartStore.Add(domain.CartLineItem{ProductID: "p2", Name: "x", UnitPrice: 10, Quantity: 1}))
	orch.SetForm(validCODForm())

	_, err = orch.Submit(context.Background())
	var transitionErr *errors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.CheckoutStateComplete, transitionErr.From)
	assert.Equal(t, 1, submitter.calls)
}

func TestAbandonCancelsInFlightSubmission(t *testing.T) {
	block := make(chan struct{}) // never closed; only ctx can release
	submitter := &mockSubmitter{number: "ORD123456", block: block}
	orch := NewOrchestrator(cartWithItem(t, 100, 1), submitter, nil, nil)
	orch.SetForm(validCODForm())

	done := make(chan error, 1)
	go func() {
		_, err := orch.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool {
		return orch.State() == domain.CheckoutStateSubmitting
	}, 2*time.Second, 10*time.Millisecond)

	orch.Abandon()
	err := <-done
	require.Error(t, err)

	assert.Equal(t, domain.CheckoutStateFormEntry, orch.State())
	assert.Nil(t, orch.Confirmation())
}

func TestSetFormClearsEditedFieldErrors(t *testing.T) {
	orch := NewOrchestrator(cartWithItem(t, 100, 1), &mockSubmitter{}, nil, nil)

	form := validCODForm()
	form.Email = "bad"
	form.Phone = "123"
	orch.SetForm(form)

	_, err := orch.Submit(context.Background())
	require.Error(t, err)
	require.Contains(t, orch.FieldErrors(), "email")
	require.Contains(t, orch.FieldErrors(), "phone")

	// Fixing only the email clears only the email error
	form.Email = "aiko@example.com"
	orch.SetForm(form)

	errs := orch.FieldErrors()
	assert.NotContains(t, errs, "email")
	assert.Contains(t, errs, "phone")
}

func TestIdempotencyKeyReusedAcrossRetries(t *testing.T) {
	submitter := &mockSubmitter{err: &errors.ErrSubmissionFailed{StatusCode: 500}}
	orch := NewOrchestrator(cartWithItem(t, 100, 1), submitter, nil, nil)
	orch.EnableIdempotencyKeys()
	orch.SetForm(validCODForm())

	_, err := orch.Submit(context.Background())
	require.Error(t, err)
	firstKey := submitter.lastIdemKey
	require.NotEmpty(t, firstKey)

	submitter.err = nil
	submitter.number = "ORD123456"
	_, err = orch.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, firstKey, submitter.lastIdemKey, "retry must reuse the session key")
}

func TestIdempotencyKeyOffByDefault(t *testing.T) {
	submitter := &mockSubmitter{number: "ORD123456"}
	orch := NewOrchestrator(cartWithItem(t, 100, 1), submitter, nil, nil)
	orch.SetForm(validCODForm())

	_, err := orch.Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, submitter.lastIdemKey)
}

// End-to-end through the real submission client: a response without an
// order_number yields a generated fallback number and still completes.
func TestSubmitFallbackNumberThroughRealClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	sessionFile := t.TempDir() + "/session.json"
	client := orders.NewClient(srv.URL, session.NewStore(sessionFile, nil), nil)
	cartStore := cartWithItem(t, 100, 1)
	orch := NewOrchestrator(cartStore, client, nil, nil)
	orch.SetForm(validCODForm())

	conf, err := orch.Submit(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, `^ORD\d{6}$`, conf.OrderNumber)
	assert.Equal(t, domain.CheckoutStateComplete, orch.State())
	assert.Equal(t, 0, cartStore.Len())
}
