package activities

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfare/booking-wizard/internal/models"
	"github.com/skyfare/booking-wizard/internal/sink"
	"github.com/skyfare/booking-wizard/pkg/logger"
)

func newTestActivities(s *sink.MemorySink) *Activities {
	return NewActivities(s, nil, nil, logger.NewNop())
}

func TestPublishStatus_WritesSinkDocument(t *testing.T) {
	store := sink.NewMemorySink()
	a := newTestActivities(store)
	ctx := context.Background()

	err := a.PublishStatus(ctx, PublishStatusInput{
		SessionID: "session-1",
		VisitorID: "visitor-1",
		Status:    models.CheckoutStatusAwaitingOTP,
	})
	require.NoError(t, err)

	doc, ok := store.Document("visitor-1")
	require.True(t, ok)
	assert.Equal(t, "awaiting_otp", doc["status"])
	assert.Equal(t, "awaiting_otp", doc["pagename"])
}

func TestRecordOTPAttempt_KeepsHistory(t *testing.T) {
	store := sink.NewMemorySink()
	a := newTestActivities(store)
	ctx := context.Background()

	err := a.RecordOTPAttempt(ctx, RecordOTPAttemptInput{
		SessionID: "session-1",
		VisitorID: "visitor-1",
		Code:      "111111",
		AllCodes:  []string{"111111"},
	})
	require.NoError(t, err)

	err = a.RecordOTPAttempt(ctx, RecordOTPAttemptInput{
		SessionID: "session-1",
		VisitorID: "visitor-1",
		Code:      "222222",
		AllCodes:  []string{"111111", "222222"},
	})
	require.NoError(t, err)

	doc, ok := store.Document("visitor-1")
	require.True(t, ok)
	assert.Equal(t, "222222", doc["otp"])
	assert.Equal(t, []string{"111111", "222222"}, doc["allOtps"])
}

func TestVerifyOTP_AlwaysRejects(t *testing.T) {
	a := newTestActivities(sink.NewMemorySink())

	codes := []string{"000000", "123456", "999999"}
	for _, code := range codes {
		result, err := a.VerifyOTP(context.Background(), VerifyOTPInput{
			SessionID: "session-1",
			Code:      code,
			Attempt:   1,
		})
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Error)
	}
}

func TestConfirmBooking_GeneratesReference(t *testing.T) {
	store := sink.NewMemorySink()
	a := newTestActivities(store)
	ctx := context.Background()

	booking, err := a.ConfirmBooking(ctx, ConfirmBookingInput{
		SessionID: "session-1",
		VisitorID: "visitor-1",
		FlightID:  "JZ101",
		Criteria: models.SearchCriteria{
			Origin:         "KWI",
			Destination:    "DXB",
			PassengerCount: 2,
			CabinClass:     models.CabinEconomy,
			TripType:       models.TripRoundTrip,
		},
		Seats: []string{"15A", "15B"},
		Price: models.PriceBreakdown{BaseFare: 90, Taxes: 8, SeatFees: 10, Total: 108},
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{6}$`), booking.BookingRef)
	assert.Equal(t, "JZ", booking.BookingRef[:2])
	assert.Equal(t, "JZ101", booking.FlightID)
	assert.False(t, booking.CreatedAt.IsZero())

	doc, ok := store.Document("visitor-1")
	require.True(t, ok)
	assert.Equal(t, booking.BookingRef, doc["bookingRef"])
	assert.Equal(t, "confirmed", doc["status"])
}

func TestConfirmBooking_UniqueReferences(t *testing.T) {
	a := newTestActivities(sink.NewMemorySink())
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		booking, err := a.ConfirmBooking(ctx, ConfirmBookingInput{
			SessionID: "session-1",
			VisitorID: "visitor-1",
			FlightID:  "EK302",
		})
		require.NoError(t, err)
		assert.False(t, seen[booking.BookingRef], "duplicate reference %s", booking.BookingRef)
		seen[booking.BookingRef] = true
	}
}
