package wizard

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfare/booking-wizard/internal/models"
)

func TestDecodeState_Defaults(t *testing.T) {
	st := DecodeState(url.Values{})

	assert.Equal(t, 1, st.Criteria.PassengerCount)
	assert.Equal(t, models.CabinEconomy, st.Criteria.CabinClass)
	assert.Equal(t, models.TripRoundTrip, st.Criteria.TripType)
	assert.Empty(t, st.Seats)
	assert.Empty(t, st.Passengers)
}

func TestDecodeState_GarbageFallsBackToDefaults(t *testing.T) {
	q := url.Values{}
	q.Set(KeyPassengers, "lots")
	q.Set(KeyClass, "luxury")
	q.Set(KeyTripType, "teleport")
	q.Set(KeyDepartDate, "next tuesday")
	q.Set(KeyTotalPrice, "free")

	st := DecodeState(q)
	assert.Equal(t, 1, st.Criteria.PassengerCount)
	assert.Equal(t, models.CabinEconomy, st.Criteria.CabinClass)
	assert.Equal(t, models.TripRoundTrip, st.Criteria.TripType)
	assert.True(t, st.Criteria.DepartDate.IsZero())
	assert.Zero(t, st.TotalPrice)
}

func TestDecodeState_PassengersAsCount(t *testing.T) {
	q := url.Values{}
	q.Set(KeyPassengers, "3")

	st := DecodeState(q)
	assert.Equal(t, 3, st.Criteria.PassengerCount)
	assert.Empty(t, st.Passengers)
}

func TestDecodeState_PassengersAsRecords(t *testing.T) {
	q := url.Values{}
	q.Set(KeyPassengers, `[{"firstName":"Noura","lastName":"AlSabah","dateOfBirth":"1990-04-12","gender":"female","email":"noura@example.com"}]`)

	st := DecodeState(q)
	require.Len(t, st.Passengers, 1)
	assert.Equal(t, "Noura", st.Passengers[0].FirstName)
	assert.Equal(t, 1, st.Criteria.PassengerCount, "record count wins over the default")
}

func TestStateRoundTrip(t *testing.T) {
	depart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	ret := depart.AddDate(0, 0, 7)

	original := State{
		Criteria: models.SearchCriteria{
			Origin:         "KWI",
			Destination:    "DXB",
			DepartDate:     depart,
			ReturnDate:     &ret,
			PassengerCount: 2,
			CabinClass:     models.CabinBusiness,
			TripType:       models.TripRoundTrip,
		},
		FlightID:   "JZ101",
		Seats:      []string{"15A", "15B"},
		TotalPrice: 108,
		BookingRef: "JZ4X9K2P",
	}

	decoded := DecodeState(original.Encode())
	assert.Equal(t, original.Criteria, decoded.Criteria)
	assert.Equal(t, original.FlightID, decoded.FlightID)
	assert.Equal(t, original.Seats, decoded.Seats)
	assert.Equal(t, original.TotalPrice, decoded.TotalPrice)
	assert.Equal(t, original.BookingRef, decoded.BookingRef)
}

func TestStateRoundTrip_WithPassengerRecords(t *testing.T) {
	original := State{
		Criteria: models.SearchCriteria{
			Origin: "KWI", Destination: "DXB",
			PassengerCount: 2,
			CabinClass:     models.CabinEconomy,
			TripType:       models.TripOneWay,
		},
		Passengers: []models.PassengerRecord{
			{FirstName: "Noura", LastName: "AlSabah", DateOfBirth: "1990-04-12", Gender: "female", Email: "noura@example.com"},
			{FirstName: "Fahad", LastName: "AlRashid", DateOfBirth: "1988-11-02", Gender: "male", Email: "fahad@example.com"},
		},
	}

	decoded := DecodeState(original.Encode())
	require.Len(t, decoded.Passengers, 2)
	assert.Equal(t, original.Passengers, decoded.Passengers)
	assert.Equal(t, 2, decoded.Criteria.PassengerCount)
}
