package models

import "time"

// CheckoutStatus tracks the payment/confirmation flow.
type CheckoutStatus string

const (
	CheckoutStatusIdle         CheckoutStatus = "idle"
	CheckoutStatusProcessing   CheckoutStatus = "processing"
	CheckoutStatusAwaitingOTP  CheckoutStatus = "awaiting_otp"
	CheckoutStatusVerifyingOTP CheckoutStatus = "verifying_otp"
	CheckoutStatusConfirmed    CheckoutStatus = "confirmed"
	CheckoutStatusCancelled    CheckoutStatus = "cancelled"
)

// CheckoutVariant selects which payment flow a deployment runs. The two are
// mutually exclusive: the OTP-gated flow has no success state by design,
// while direct-confirm goes straight from processing to a confirmation.
type CheckoutVariant string

const (
	VariantOtpGated      CheckoutVariant = "otp_gated"
	VariantDirectConfirm CheckoutVariant = "direct_confirm"
)

// CheckoutState is the queryable state of a running checkout flow.
type CheckoutState struct {
	SessionID   string               `json:"sessionId"`
	Status      CheckoutStatus       `json:"status"`
	OTPError    string               `json:"otpError,omitempty"`
	OTPAttempts int                  `json:"otpAttempts"`
	BookingRef  string               `json:"bookingRef,omitempty"`
	Booking     *BookingConfirmation `json:"booking,omitempty"`
	LastUpdated time.Time            `json:"lastUpdated"`
}

// SubmitCheckoutRequest carries the payment form and the terms flag.
type SubmitCheckoutRequest struct {
	Payment      PaymentDetails `json:"payment"`
	AgreeToTerms bool           `json:"agreeToTerms"`
}

// SubmitOTPRequest carries one passcode attempt.
type SubmitOTPRequest struct {
	Code string `json:"code"`
}

// CheckoutStateResponse is returned from every checkout-flow endpoint.
type CheckoutStateResponse struct {
	State      *CheckoutState `json:"state"`
	FormErrors FormErrors     `json:"formErrors,omitempty"`
	Message    string         `json:"message,omitempty"`
}
