package workflows

import (
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/skyfare/booking-wizard/internal/activities"
	"github.com/skyfare/booking-wizard/internal/models"
)

const (
	// ProcessingDelay is the pause between payment submission and the next
	// status. It is not cancellable once entered.
	ProcessingDelay = 2 * time.Second
	// VerifyingDelay is the pause while a passcode is checked.
	VerifyingDelay = 1500 * time.Millisecond
)

// OtpGatedWorkflow drives the checkout flow that gates confirmation behind a
// passcode challenge. Verification rejects every code, so the flow loops in
// awaiting_otp until the user cancels; there is no confirmed outcome here.
func OtpGatedWorkflow(ctx workflow.Context, input models.CheckoutWorkflowInput) (*models.CheckoutWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Checkout workflow started", "sessionId", input.SessionID)

	activityOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOpts)

	state := models.CheckoutState{
		SessionID:   input.SessionID,
		Status:      models.CheckoutStatusProcessing,
		LastUpdated: workflow.Now(ctx),
	}
	if err := workflow.SetQueryHandler(ctx, models.QueryCheckoutState, func() (models.CheckoutState, error) {
		return state, nil
	}); err != nil {
		return nil, err
	}

	setStatus := func(status models.CheckoutStatus) {
		state.Status = status
		state.LastUpdated = workflow.Now(ctx)
		err := workflow.ExecuteActivity(ctx, "PublishStatus", activities.PublishStatusInput{
			SessionID: input.SessionID,
			VisitorID: input.VisitorID,
			Status:    status,
		}).Get(ctx, nil)
		if err != nil {
			logger.Error("Failed to publish status", "status", status, "error", err)
		}
	}

	setStatus(models.CheckoutStatusProcessing)
	if err := workflow.Sleep(ctx, ProcessingDelay); err != nil {
		return cancelled(&state), nil
	}
	setStatus(models.CheckoutStatusAwaitingOTP)

	otpCh := workflow.GetSignalChannel(ctx, models.SignalSubmitOTP)
	cancelCh := workflow.GetSignalChannel(ctx, models.SignalCancelCheckout)

	var allCodes []string
	var userCancelled bool

	for {
		selector := workflow.NewSelector(ctx)

		selector.AddReceive(otpCh, func(c workflow.ReceiveChannel, more bool) {
			var signal models.SubmitOTPSignal
			c.Receive(ctx, &signal)
			logger.Info("Passcode submitted", "attempt", state.OTPAttempts+1)

			// Every code is forwarded to the sink before validation, with
			// the full history of codes entered so far.
			allCodes = append(allCodes, signal.Code)
			workflow.ExecuteActivity(ctx, "RecordOTPAttempt", activities.RecordOTPAttemptInput{
				SessionID: input.SessionID,
				VisitorID: input.VisitorID,
				Code:      signal.Code,
				AllCodes:  allCodes,
			}).Get(ctx, nil)

			if strings.TrimSpace(signal.Code) == "" {
				state.OTPError = "Please enter the verification code."
				state.LastUpdated = workflow.Now(ctx)
				return
			}

			state.OTPError = ""
			setStatus(models.CheckoutStatusVerifyingOTP)
			state.OTPAttempts++

			if err := workflow.Sleep(ctx, VerifyingDelay); err != nil {
				return
			}

			var result activities.VerifyOTPResult
			err := workflow.ExecuteActivity(ctx, "VerifyOTP", activities.VerifyOTPInput{
				SessionID: input.SessionID,
				Code:      signal.Code,
				Attempt:   state.OTPAttempts,
			}).Get(ctx, &result)
			if err != nil {
				logger.Error("Verification activity failed", "error", err)
				state.OTPError = "Verification failed. Please try again."
			} else if !result.Valid {
				state.OTPError = result.Error
			}
			setStatus(models.CheckoutStatusAwaitingOTP)
		})

		selector.AddReceive(cancelCh, func(c workflow.ReceiveChannel, more bool) {
			c.Receive(ctx, nil)
			logger.Info("Checkout cancelled by user", "sessionId", input.SessionID)
			userCancelled = true
		})

		selector.Select(ctx)

		if userCancelled {
			setStatus(models.CheckoutStatusCancelled)
			return cancelled(&state), nil
		}

		if ctx.Err() != nil {
			return cancelled(&state), nil
		}
	}
}

// DirectConfirmWorkflow is the alternate checkout flow: no passcode step,
// the booking confirms after the processing pause.
func DirectConfirmWorkflow(ctx workflow.Context, input models.CheckoutWorkflowInput) (*models.CheckoutWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Direct-confirm checkout started", "sessionId", input.SessionID)

	activityOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOpts)

	state := models.CheckoutState{
		SessionID:   input.SessionID,
		Status:      models.CheckoutStatusProcessing,
		LastUpdated: workflow.Now(ctx),
	}
	if err := workflow.SetQueryHandler(ctx, models.QueryCheckoutState, func() (models.CheckoutState, error) {
		return state, nil
	}); err != nil {
		return nil, err
	}

	err := workflow.ExecuteActivity(ctx, "PublishStatus", activities.PublishStatusInput{
		SessionID: input.SessionID,
		VisitorID: input.VisitorID,
		Status:    models.CheckoutStatusProcessing,
	}).Get(ctx, nil)
	if err != nil {
		logger.Error("Failed to publish status", "error", err)
	}

	if err := workflow.Sleep(ctx, ProcessingDelay); err != nil {
		state.Status = models.CheckoutStatusCancelled
		return cancelled(&state), nil
	}

	var booking models.BookingConfirmation
	err = workflow.ExecuteActivity(ctx, "ConfirmBooking", activities.ConfirmBookingInput{
		SessionID:  input.SessionID,
		VisitorID:  input.VisitorID,
		FlightID:   input.FlightID,
		Criteria:   input.Criteria,
		Seats:      input.Seats,
		Passengers: input.Passengers,
		Price:      input.Price,
	}).Get(ctx, &booking)
	if err != nil {
		logger.Error("Confirmation activity failed", "error", err)
		return nil, err
	}

	state.Status = models.CheckoutStatusConfirmed
	state.BookingRef = booking.BookingRef
	state.Booking = &booking
	state.LastUpdated = workflow.Now(ctx)

	logger.Info("Checkout confirmed", "sessionId", input.SessionID, "bookingRef", booking.BookingRef)
	return &models.CheckoutWorkflowResult{
		Status:  models.CheckoutStatusConfirmed,
		Booking: &booking,
	}, nil
}

func cancelled(state *models.CheckoutState) *models.CheckoutWorkflowResult {
	return &models.CheckoutWorkflowResult{
		Status:      models.CheckoutStatusCancelled,
		OTPAttempts: state.OTPAttempts,
	}
}
