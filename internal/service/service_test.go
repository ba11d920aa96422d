package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfare/booking-wizard/internal/models"
	"github.com/skyfare/booking-wizard/internal/sink"
	"github.com/skyfare/booking-wizard/internal/visitor"
	"github.com/skyfare/booking-wizard/internal/wizard"
	"github.com/skyfare/booking-wizard/pkg/logger"
)

func newTestService(store *sink.MemorySink) BookingService {
	return NewBookingService(nil, store, visitor.NewMemoryCache(), models.VariantOtpGated, "test-queue", logger.NewNop())
}

func testCriteria() models.SearchCriteria {
	return models.SearchCriteria{
		Origin:         "KWI",
		Destination:    "DXB",
		DepartDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		PassengerCount: 2,
		CabinClass:     models.CabinEconomy,
		TripType:       models.TripRoundTrip,
	}
}

func startedSession(t *testing.T, svc BookingService) string {
	t.Helper()
	snap, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	return snap.SessionID
}

func TestSearchFlights_MemoizedPerCriteria(t *testing.T) {
	svc := newTestService(sink.NewMemorySink())
	ctx := context.Background()
	id := startedSession(t, svc)

	first, err := svc.SearchFlights(ctx, id, testCriteria())
	require.NoError(t, err)
	require.Len(t, first, 4)

	second, err := svc.SearchFlights(ctx, id, testCriteria())
	require.NoError(t, err)
	assert.Equal(t, first, second, "same criteria must return the same offers")

	other := testCriteria()
	other.Destination = "LHR"
	third, err := svc.SearchFlights(ctx, id, other)
	require.NoError(t, err)
	assert.NotEqual(t, first[0].Destination, third[0].Destination)
}

func TestSearchFlights_RejectsInvalidCriteria(t *testing.T) {
	svc := newTestService(sink.NewMemorySink())
	id := startedSession(t, svc)

	bad := testCriteria()
	bad.Destination = bad.Origin
	_, err := svc.SearchFlights(context.Background(), id, bad)
	assert.ErrorIs(t, err, models.ErrSameAirport)
}

func TestSearchFlights_SessionNotFound(t *testing.T) {
	svc := newTestService(sink.NewMemorySink())

	_, err := svc.SearchFlights(context.Background(), "missing", testCriteria())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSelectFlight_GeneratesSeatMapOnce(t *testing.T) {
	svc := newTestService(sink.NewMemorySink())
	ctx := context.Background()
	id := startedSession(t, svc)

	offers, err := svc.SearchFlights(ctx, id, testCriteria())
	require.NoError(t, err)

	seats, err := svc.SelectFlight(ctx, id, offers[0].ID)
	require.NoError(t, err)
	require.NotEmpty(t, seats)

	again, err := svc.SelectFlight(ctx, id, offers[0].ID)
	require.NoError(t, err)
	assert.Equal(t, seats, again, "re-selecting the flight must not regenerate the map")

	_, err = svc.SelectFlight(ctx, id, "BOGUS999")
	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestSeatFlow_ToggleAndContinue(t *testing.T) {
	svc := newTestService(sink.NewMemorySink())
	ctx := context.Background()
	id := startedSession(t, svc)

	offers, err := svc.SearchFlights(ctx, id, testCriteria())
	require.NoError(t, err)
	seats, err := svc.SelectFlight(ctx, id, offers[0].ID)
	require.NoError(t, err)

	var available []string
	for _, seat := range seats {
		if seat.Status == models.SeatStatusAvailable {
			available = append(available, seat.ID)
		}
		if len(available) == 3 {
			break
		}
	}
	require.Len(t, available, 3)

	// Partial selection cannot continue.
	_, err = svc.ToggleSeat(ctx, id, available[0])
	require.NoError(t, err)
	_, _, err = svc.ContinueToPassengers(ctx, id)
	assert.Error(t, err)

	selected, err := svc.ToggleSeat(ctx, id, available[1])
	require.NoError(t, err)
	assert.Len(t, selected, 2)

	// A third toggle on a full selection is a no-op.
	selected, err = svc.ToggleSeat(ctx, id, available[2])
	require.NoError(t, err)
	assert.Len(t, selected, 2)

	frozen, price, err := svc.ContinueToPassengers(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{available[0], available[1]}, frozen)
	assert.Equal(t, 45*2+8+5*2, price.Total)
}

func testPassengers() []models.PassengerRecord {
	return []models.PassengerRecord{
		{FirstName: "Noura", LastName: "AlSabah", DateOfBirth: "1990-04-12", Gender: "female", Email: "noura@example.com"},
		{FirstName: "Fahad", LastName: "AlRashid", DateOfBirth: "1988-11-02", Gender: "male", Email: "fahad@example.com"},
	}
}

// seatsSelectedSession walks a session up to the passenger step: two
// available seats toggled and the selection frozen.
func seatsSelectedSession(t *testing.T, svc BookingService) string {
	t.Helper()
	ctx := context.Background()
	id := startedSession(t, svc)

	offers, err := svc.SearchFlights(ctx, id, testCriteria())
	require.NoError(t, err)
	seats, err := svc.SelectFlight(ctx, id, offers[0].ID)
	require.NoError(t, err)

	picked := 0
	for _, seat := range seats {
		if seat.Status == models.SeatStatusAvailable && picked < 2 {
			_, err = svc.ToggleSeat(ctx, id, seat.ID)
			require.NoError(t, err)
			picked++
		}
	}
	_, _, err = svc.ContinueToPassengers(ctx, id)
	require.NoError(t, err)
	return id
}

func checkoutReadySession(t *testing.T, svc BookingService) string {
	t.Helper()
	id := seatsSelectedSession(t, svc)

	errs, err := svc.SubmitPassengers(context.Background(), id, testPassengers())
	require.NoError(t, err)
	require.True(t, errs.Empty())
	return id
}

func TestSubmitCheckout_TermsGateSkipsSinkWrite(t *testing.T) {
	store := sink.NewMemorySink()
	svc := newTestService(store)
	id := checkoutReadySession(t, svc)

	resp, err := svc.SubmitCheckout(context.Background(), id, models.SubmitCheckoutRequest{
		Payment: models.PaymentDetails{
			CardNumber:     "4111 1111 1111 1111",
			ExpiryDate:     "12/27",
			CVV:            "123",
			CardholderName: "Noura AlSabah",
			BillingAddress: "Block 4, Street 12",
			City:           "Kuwait City",
			Country:        "KW",
		},
		AgreeToTerms: false,
	})
	require.NoError(t, err)
	assert.Contains(t, resp.FormErrors, "terms")
	assert.Equal(t, models.CheckoutStatusIdle, resp.State.Status)

	// The terms gate rejects before the form snapshot is forwarded.
	assert.False(t, sinkHasCardNumber(store, "4111111111111111"),
		"card snapshot must not reach the sink on a terms-only failure")
}

func sinkHasCardNumber(store *sink.MemorySink, want string) bool {
	for _, id := range store.VisitorIDs() {
		if doc, ok := store.Document(id); ok {
			if doc["cardNumber"] == want {
				return true
			}
		}
	}
	return false
}

func TestSubmitCheckout_WritesSinkBeforeFieldValidation(t *testing.T) {
	store := sink.NewMemorySink()
	svc := newTestService(store)
	id := checkoutReadySession(t, svc)

	resp, err := svc.SubmitCheckout(context.Background(), id, models.SubmitCheckoutRequest{
		Payment:      models.PaymentDetails{CardNumber: "1234"},
		AgreeToTerms: true,
	})
	require.NoError(t, err)
	assert.Contains(t, resp.FormErrors, "cardNumber")
	assert.Contains(t, resp.FormErrors, "expiryDate")
	assert.Contains(t, resp.FormErrors, "cvv")
	assert.NotContains(t, resp.FormErrors, "zipCode")

	// Past the terms gate the snapshot reaches the sink even though field
	// validation fails. The visitor id is minted internally; scan the store.
	assert.True(t, sinkHasCardNumber(store, "1234"),
		"card snapshot must reach the sink when field validation fails")
}

func TestSubmitCheckout_RequiresPassengers(t *testing.T) {
	svc := newTestService(sink.NewMemorySink())
	id := seatsSelectedSession(t, svc)

	_, err := svc.SubmitCheckout(context.Background(), id, models.SubmitCheckoutRequest{
		AgreeToTerms: true,
	})
	assert.ErrorIs(t, err, ErrPassengersNotSubmitted)
}

func TestExportState_RoundTrip(t *testing.T) {
	svc := newTestService(sink.NewMemorySink())
	ctx := context.Background()
	id := checkoutReadySession(t, svc)

	q, err := svc.ExportState(ctx, id)
	require.NoError(t, err)

	snap, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, snap.Price)

	st := wizard.DecodeState(q)
	assert.Equal(t, "KWI", st.Criteria.Origin)
	assert.Equal(t, "DXB", st.Criteria.Destination)
	assert.Equal(t, 2, st.Criteria.PassengerCount)
	assert.True(t, st.Criteria.DepartDate.Equal(testCriteria().DepartDate))
	assert.Equal(t, snap.FlightID, st.FlightID)
	assert.Equal(t, snap.Seats, st.Seats)
	assert.Equal(t, snap.Passengers, st.Passengers)
	assert.Equal(t, snap.Price.Total, st.TotalPrice)
}

func TestExportState_RequiresCriteria(t *testing.T) {
	svc := newTestService(sink.NewMemorySink())
	id := startedSession(t, svc)

	_, err := svc.ExportState(context.Background(), id)
	assert.ErrorIs(t, err, ErrNoSearchCriteria)
}

func TestResumeSession_RebuildsWizardState(t *testing.T) {
	svc := newTestService(sink.NewMemorySink())
	ctx := context.Background()
	id := checkoutReadySession(t, svc)

	q, err := svc.ExportState(ctx, id)
	require.NoError(t, err)

	resumed, err := svc.ResumeSession(ctx, q)
	require.NoError(t, err)
	require.NotNil(t, resumed.Criteria)
	assert.Equal(t, "KWI", resumed.Criteria.Origin)
	assert.Equal(t, "DXB", resumed.Criteria.Destination)

	orig, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, orig.FlightID, resumed.FlightID)

	// Seat occupancy is re-rolled on resume, so carried seats survive only
	// where still available.
	assert.Subset(t, orig.Seats, resumed.Seats)
}

func TestResumeSession_FallsBackOnInvalidState(t *testing.T) {
	svc := newTestService(sink.NewMemorySink())
	ctx := context.Background()

	q := url.Values{}
	q.Set("from", "KWI")
	q.Set("to", "KWI")
	q.Set("passengers", "garbage")

	snap, err := svc.ResumeSession(ctx, q)
	require.NoError(t, err)
	assert.Nil(t, snap.Criteria, "invalid criteria must not be adopted")
	assert.Empty(t, snap.FlightID)

	// The session is live and usable from the first step.
	_, err = svc.SearchFlights(ctx, snap.SessionID, testCriteria())
	assert.NoError(t, err)
}

func TestEndSession_MarksVisitorOffline(t *testing.T) {
	store := sink.NewMemorySink()
	svc := newTestService(store)
	ctx := context.Background()
	id := startedSession(t, svc)

	// Touch the sink so the session has a visitor id.
	_, err := svc.SearchFlights(ctx, id, testCriteria())
	require.NoError(t, err)
	visitors := store.VisitorIDs()
	require.Len(t, visitors, 1)

	require.NoError(t, svc.EndSession(ctx, id))

	doc, ok := store.Document(visitors[0])
	require.True(t, ok)
	assert.Equal(t, false, doc["online"])
	assert.NotEmpty(t, doc["lastSeen"])

	_, err = svc.GetSession(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.EndSession(ctx, id), ErrSessionNotFound)
}

func TestCheckoutOps_RequireActiveCheckout(t *testing.T) {
	svc := newTestService(sink.NewMemorySink())
	ctx := context.Background()
	id := startedSession(t, svc)

	assert.ErrorIs(t, svc.SubmitOTP(ctx, id, "123456"), ErrCheckoutNotActive)
	assert.ErrorIs(t, svc.CancelCheckout(ctx, id), ErrCheckoutNotActive)
	_, err := svc.GetCheckoutState(ctx, id)
	assert.ErrorIs(t, err, ErrCheckoutNotActive)

	assert.ErrorIs(t, svc.SubmitOTP(ctx, "missing", "123456"), ErrSessionNotFound)
}
