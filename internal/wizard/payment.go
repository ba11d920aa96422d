package wizard

import (
	"regexp"
	"strings"

	"github.com/skyfare/booking-wizard/internal/models"
)

var expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// minCardDigits is the minimum digit count after stripping separators.
// Cards are 13-19 digits on the wire but the form requires at least 16.
const minCardDigits = 16

// ValidatePayment checks the payment form field by field. An empty result
// means the form may proceed to the payment flow.
func ValidatePayment(p models.PaymentDetails) models.FormErrors {
	errs := models.FormErrors{}

	digits := strings.ReplaceAll(p.CardNumber, " ", "")
	if p.CardNumber == "" || len(digits) < minCardDigits {
		errs["cardNumber"] = "card number is invalid"
	}
	if p.ExpiryDate == "" || !expiryPattern.MatchString(p.ExpiryDate) {
		errs["expiryDate"] = "expiry date is invalid"
	}
	if len(p.CVV) < 3 {
		errs["cvv"] = "security code is invalid"
	}
	if strings.TrimSpace(p.CardholderName) == "" {
		errs["cardholderName"] = "cardholder name is required"
	}
	if strings.TrimSpace(p.BillingAddress) == "" {
		errs["billingAddress"] = "billing address is required"
	}
	if strings.TrimSpace(p.City) == "" {
		errs["city"] = "city is required"
	}
	if p.Country == "" {
		errs["country"] = "country is required"
	}

	return errs
}

// ValidateTerms surfaces a distinct error when the terms flag is not set;
// the payment flow is never attempted in that case.
func ValidateTerms(agreed bool) models.FormErrors {
	if agreed {
		return models.FormErrors{}
	}
	return models.FormErrors{"terms": "you must agree to the terms and conditions"}
}
