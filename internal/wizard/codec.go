package wizard

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skyfare/booking-wizard/internal/models"
)

// Query parameter keys threading state between wizard steps. Every value is
// stringified; the "passengers" key carries a count at the search and seat
// steps and a JSON-encoded array from the passenger step onward.
const (
	KeyFrom       = "from"
	KeyTo         = "to"
	KeyDepartDate = "departDate"
	KeyReturnDate = "returnDate"
	KeyPassengers = "passengers"
	KeyClass      = "class"
	KeyTripType   = "tripType"
	KeyFlightID   = "flightId"
	KeySeats      = "seats"
	KeyTotalPrice = "totalPrice"
	KeyBookingRef = "bookingRef"
)

// State is the composed wizard state handed between steps by serialized
// snapshot. Each step reads the accumulated fields and appends its own.
type State struct {
	Criteria   models.SearchCriteria
	FlightID   string
	Seats      []string
	Passengers []models.PassengerRecord
	TotalPrice int
	BookingRef string
}

// DecodeState parses wizard state from query parameters. Parse failures
// fall back to defaults instead of erroring: the wizard always renders
// something.
func DecodeState(q url.Values) State {
	st := State{
		Criteria: models.SearchCriteria{
			Origin:         q.Get(KeyFrom),
			Destination:    q.Get(KeyTo),
			PassengerCount: 1,
			CabinClass:     models.CabinEconomy,
			TripType:       models.TripRoundTrip,
		},
		FlightID:   q.Get(KeyFlightID),
		BookingRef: q.Get(KeyBookingRef),
	}

	if t, err := time.Parse(time.RFC3339, q.Get(KeyDepartDate)); err == nil {
		st.Criteria.DepartDate = t
	}
	if t, err := time.Parse(time.RFC3339, q.Get(KeyReturnDate)); err == nil {
		st.Criteria.ReturnDate = &t
	}

	switch c := models.CabinClass(q.Get(KeyClass)); c {
	case models.CabinEconomy, models.CabinPremium, models.CabinBusiness, models.CabinFirst:
		st.Criteria.CabinClass = c
	}
	switch t := models.TripType(q.Get(KeyTripType)); t {
	case models.TripOneWay, models.TripRoundTrip, models.TripMultiCity:
		st.Criteria.TripType = t
	}

	// "passengers" is a count early in the wizard and a JSON array after the
	// passenger step; disambiguate by shape.
	if raw := q.Get(KeyPassengers); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			if n >= 1 {
				st.Criteria.PassengerCount = n
			}
		} else if strings.HasPrefix(strings.TrimSpace(raw), "[") {
			var recs []models.PassengerRecord
			if err := json.Unmarshal([]byte(raw), &recs); err == nil {
				st.Passengers = recs
				if len(recs) >= 1 {
					st.Criteria.PassengerCount = len(recs)
				}
			}
		}
	}

	if raw := q.Get(KeySeats); raw != "" {
		st.Seats = strings.Split(raw, ",")
	}

	if n, err := strconv.Atoi(q.Get(KeyTotalPrice)); err == nil {
		st.TotalPrice = n
	}

	return st
}

// Encode serializes the state back to query parameters for the next step.
func (s State) Encode() url.Values {
	q := url.Values{}
	if s.Criteria.Origin != "" {
		q.Set(KeyFrom, s.Criteria.Origin)
	}
	if s.Criteria.Destination != "" {
		q.Set(KeyTo, s.Criteria.Destination)
	}
	if !s.Criteria.DepartDate.IsZero() {
		q.Set(KeyDepartDate, s.Criteria.DepartDate.Format(time.RFC3339))
	}
	if s.Criteria.ReturnDate != nil {
		q.Set(KeyReturnDate, s.Criteria.ReturnDate.Format(time.RFC3339))
	}
	if len(s.Passengers) > 0 {
		if data, err := json.Marshal(s.Passengers); err == nil {
			q.Set(KeyPassengers, string(data))
		}
	} else {
		q.Set(KeyPassengers, strconv.Itoa(s.Criteria.PassengerCount))
	}
	q.Set(KeyClass, string(s.Criteria.CabinClass))
	q.Set(KeyTripType, string(s.Criteria.TripType))
	if s.FlightID != "" {
		q.Set(KeyFlightID, s.FlightID)
	}
	if len(s.Seats) > 0 {
		q.Set(KeySeats, strings.Join(s.Seats, ","))
	}
	if s.TotalPrice > 0 {
		q.Set(KeyTotalPrice, strconv.Itoa(s.TotalPrice))
	}
	if s.BookingRef != "" {
		q.Set(KeyBookingRef, s.BookingRef)
	}
	return q
}
