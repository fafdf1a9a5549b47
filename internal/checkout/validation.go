package checkout

import (
	"regexp"
	"strings"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/domain"
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^\d{10}$`)
	postalCodePattern = regexp.MustCompile(`^\d{6}$`)
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// Validate checks a checkout form and returns a field-to-message error
// set. All rules run independently so every error surfaces together; an
// empty set means the form is valid. The form is never mutated.
func Validate(form domain.CheckoutForm) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(form.FullName) == "" {
		errs["fullName"] = "full name is required"
	}

	email := strings.TrimSpace(form.Email)
	if email == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "email is invalid"
	}

	phone := strings.TrimSpace(form.Phone)
	if phone == "" {
		errs["phone"] = "phone number is required"
	} else if !phonePattern.MatchString(phone) {
		errs["phone"] = "phone number must be 10 digits"
	}

	if strings.TrimSpace(form.Address) == "" {
		errs["address"] = "address is required"
	}
	if strings.TrimSpace(form.City) == "" {
		errs["city"] = "city is required"
	}
	if strings.TrimSpace(form.State) == "" {
		errs["state"] = "state is required"
	}

	postalCode := strings.TrimSpace(form.PostalCode)
	if postalCode == "" {
		errs["postalCode"] = "postal code is required"
	} else if !postalCodePattern.MatchString(postalCode) {
		errs["postalCode"] = "postal code must be 6 digits"
	}

	switch form.PaymentMethod {
	case domain.PaymentCardVisa, domain.PaymentCardMastercard:
		validateCardFields(form, errs)
	case domain.PaymentApplePay, domain.PaymentGooglePay, domain.PaymentPaypal, domain.PaymentCashOnDelivery:
		// Card fields are skipped entirely for non-card methods
	default:
		errs["paymentMethod"] = "select a valid payment method"
	}

	return errs
}

func validateCardFields(form domain.CheckoutForm, errs map[string]string) {
	cardNumber := strings.ReplaceAll(strings.TrimSpace(form.CardNumber), " ", "")
	if cardNumber == "" {
		errs["cardNumber"] = "card number is required"
	} else if !cardNumberPattern.MatchString(cardNumber) {
		errs["cardNumber"] = "card number must be 16 digits"
	}

	if strings.TrimSpace(form.CardHolderName) == "" {
		errs["cardHolderName"] = "card holder name is required"
	}

	expiry := strings.TrimSpace(form.Expiry)
	if expiry == "" {
		errs["expiry"] = "expiry date is required"
	} else if !expiryPattern.MatchString(expiry) {
		errs["expiry"] = "expiry must be in MM/YY format"
	}

	cvv := strings.TrimSpace(form.CVV)
	if cvv == "" {
		errs["cvv"] = "cvv is required"
	} else if !cvvPattern.MatchString(cvv) {
		errs["cvv"] = "cvv must be 3 or 4 digits"
	}
}
