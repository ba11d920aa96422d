package models

// Signals and queries for the checkout workflows.
const (
	SignalSubmitOTP      = "submit_otp"
	SignalCancelCheckout = "cancel_checkout"

	QueryCheckoutState = "checkout_state"
)

// CheckoutWorkflowInput starts a checkout workflow once the payment form has
// passed validation. The payment snapshot rides along so activities can
// forward it to the persistence sink.
type CheckoutWorkflowInput struct {
	SessionID  string            `json:"sessionId"`
	VisitorID  string            `json:"visitorId"`
	FlightID   string            `json:"flightId"`
	Criteria   SearchCriteria    `json:"criteria"`
	Seats      []string          `json:"seats"`
	Passengers []PassengerRecord `json:"passengers"`
	Price      PriceBreakdown    `json:"price"`
	Payment    PaymentDetails    `json:"payment"`
}

// CheckoutWorkflowResult is produced when a checkout workflow ends.
type CheckoutWorkflowResult struct {
	Status      CheckoutStatus       `json:"status"`
	Booking     *BookingConfirmation `json:"booking,omitempty"`
	OTPAttempts int                  `json:"otpAttempts"`
}

// SubmitOTPSignal is sent for each passcode the user enters.
type SubmitOTPSignal struct {
	Code string `json:"code"`
}
