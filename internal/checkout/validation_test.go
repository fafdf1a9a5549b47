package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/domain"
)

func validCODForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		FullName:      "Aiko Tanaka",
		Email:         "aiko@example.com",
		Phone:         "9812345678",
		Address:       "12 Sakura Lane",
		City:          "Kathmandu",
		State:         "Bagmati",
		PostalCode:    "446000",
		PaymentMethod: domain.PaymentCashOnDelivery,
	}
}

func validCardForm() domain.CheckoutForm {
	form := validCODForm()
	form.PaymentMethod = domain.PaymentCardVisa
	form.CardNumber = "1234567890123456"
	form.CardHolderName = "Aiko Tanaka"
	form.Expiry = "09/27"
	form.CVV = "123"
	return form
}

func TestValidateValidForm(t *testing.T) {
	assert.Empty(t, Validate(validCODForm()))
	assert.Empty(t, Validate(validCardForm()))
}

func TestValidateRequiredFields(t *testing.T) {
	fields := []struct {
		key   string
		unset func(*domain.CheckoutForm)
	}{
		{"fullName", func(f *domain.CheckoutForm) { f.FullName = "" }},
		{"email", func(f *domain.CheckoutForm) { f.Email = "   " }},
		{"phone", func(f *domain.CheckoutForm) { f.Phone = "" }},
		{"address", func(f *domain.CheckoutForm) { f.Address = "\t" }},
		{"city", func(f *domain.CheckoutForm) { f.City = "" }},
		{"state", func(f *domain.CheckoutForm) { f.State = " " }},
		{"postalCode", func(f *domain.CheckoutForm) { f.PostalCode = "" }},
	}

	for _, tt := range fields {
		t.Run(tt.key, func(t *testing.T) {
			form := validCODForm()
			tt.unset(&form)

			errs := Validate(form)
			require.NotEmpty(t, errs)
			assert.Contains(t, errs, tt.key)
		})
	}
}

func TestValidateAllErrorsSurfaceTogether(t *testing.T) {
	errs := Validate(domain.CheckoutForm{PaymentMethod: domain.PaymentCashOnDelivery})

	for _, key := range []string{"fullName", "email", "phone", "address", "city", "state", "postalCode"} {
		assert.Contains(t, errs, key)
	}
}

func TestValidateFieldShapes(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.CheckoutForm)
		wantKey string
	}{
		{"email without domain", func(f *domain.CheckoutForm) { f.Email = "aiko@example" }, "email"},
		{"email without at sign", func(f *domain.CheckoutForm) { f.Email = "aiko.example.com" }, "email"},
		{"phone too short", func(f *domain.CheckoutForm) { f.Phone = "12345" }, "phone"},
		{"phone with letters", func(f *domain.CheckoutForm) { f.Phone = "98123456ab" }, "phone"},
		{"postal code too short", func(f *domain.CheckoutForm) { f.PostalCode = "4460" }, "postalCode"},
		{"postal code too long", func(f *domain.CheckoutForm) { f.PostalCode = "4460001" }, "postalCode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validCODForm()
			tt.mutate(&form)

			errs := Validate(form)
			assert.Contains(t, errs, tt.wantKey)
		})
	}
}

func TestValidateCardFields(t *testing.T) {
	t.Run("short card number rejected", func(t *testing.T) {
		form := validCardForm()
		form.CardNumber = "1234"

		errs := Validate(form)
		assert.Contains(t, errs, "cardNumber")
	})

	t.Run("16 digit card number accepted", func(t *testing.T) {
		form := validCardForm()
		form.CardNumber = "1234567890123456"

		errs := Validate(form)
		assert.NotContains(t, errs, "cardNumber")
	})

	t.Run("spaces stripped before length check", func(t *testing.T) {
		form := validCardForm()
		form.CardNumber = "1234 5678 9012 3456"

		errs := Validate(form)
		assert.NotContains(t, errs, "cardNumber")
	})

	t.Run("mastercard validated like visa", func(t *testing.T) {
		form := validCardForm()
		form.PaymentMethod = domain.PaymentCardMastercard
		form.CVV = ""

		errs := Validate(form)
		assert.Contains(t, errs, "cvv")
	})

	t.Run("bad expiry rejected", func(t *testing.T) {
		form := validCardForm()
		form.Expiry = "13/27"

		errs := Validate(form)
		assert.Contains(t, errs, "expiry")
	})

	t.Run("four digit cvv accepted", func(t *testing.T) {
		form := validCardForm()
		form.CVV = "1234"

		errs := Validate(form)
		assert.NotContains(t, errs, "cvv")
	})
}

func TestValidateNonCardMethodsSkipCardFields(t *testing.T) {
	for _, method := range []domain.PaymentMethod{
		domain.PaymentCashOnDelivery,
		domain.PaymentApplePay,
		domain.PaymentGooglePay,
		domain.PaymentPaypal,
	} {
		t.Run(string(method), func(t *testing.T) {
			form := validCODForm()
			form.PaymentMethod = method
			// Card fields left empty on purpose

			errs := Validate(form)
			assert.NotContains(t, errs, "cardNumber")
			assert.NotContains(t, errs, "cardHolderName")
			assert.NotContains(t, errs, "expiry")
			assert.NotContains(t, errs, "cvv")
		})
	}
}

func TestValidateUnknownPaymentMethod(t *testing.T) {
	form := validCODForm()
	form.PaymentMethod = "bitcoin"

	errs := Validate(form)
	assert.Contains(t, errs, "paymentMethod")
}

func TestValidateIsIdempotent(t *testing.T) {
	form := validCODForm()
	form.Email = "broken"
	form.Phone = ""

	first := Validate(form)
	second := Validate(form)

	assert.Equal(t, first, second)
}

func TestValidateDoesNotMutateForm(t *testing.T) {
	form := validCardForm()
	form.CardNumber = "1234 5678 9012 3456"
	before := form

	Validate(form)
	assert.Equal(t, before, form)
}
