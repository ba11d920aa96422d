package models

// PaymentDetails is the raw checkout form. All fields except ZipCode are
// mandatory; CardNumber keeps the user's grouping and is stripped of
// whitespace only during validation.
type PaymentDetails struct {
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholderName"`
	BillingAddress string `json:"billingAddress"`
	City           string `json:"city"`
	ZipCode        string `json:"zipCode,omitempty"`
	Country        string `json:"country"`
}

// FormErrors maps field name to a human-readable message. Fields are
// validated independently so one error never blocks correcting another.
type FormErrors map[string]string

func (e FormErrors) Empty() bool { return len(e) == 0 }
