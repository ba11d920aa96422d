package confirmation

import (
	"math/rand"
	"strings"
	"time"

	"github.com/skyfare/booking-wizard/internal/models"
)

// Generic display fallbacks for unrecognized codes.
const (
	FallbackCity    = "Kuwait City"
	FallbackAirport = "International Airport"
	FallbackClass   = "Economy Class"
)

var cityNames = map[string]string{
	"KWI": "Kuwait City",
	"RUH": "Riyadh",
	"JED": "Jeddah",
	"DXB": "Dubai",
	"AUH": "Abu Dhabi",
	"DOH": "Doha",
	"BAH": "Manama",
	"MCT": "Muscat",
	"AMM": "Amman",
	"BEY": "Beirut",
	"CAI": "Cairo",
	"IST": "Istanbul",
	"LHR": "London",
	"CDG": "Paris",
	"FRA": "Frankfurt",
	"BOM": "Mumbai",
	"DEL": "New Delhi",
	"BKK": "Bangkok",
	"KUL": "Kuala Lumpur",
	"SIN": "Singapore",
	"JFK": "New York",
	"LAX": "Los Angeles",
	"SYD": "Sydney",
}

var airportNames = map[string]string{
	"KWI": "Kuwait International Airport",
	"RUH": "King Khalid International Airport",
	"JED": "King Abdulaziz International Airport",
	"DXB": "Dubai International Airport",
	"AUH": "Abu Dhabi International Airport",
	"DOH": "Hamad International Airport",
	"BAH": "Bahrain International Airport",
	"MCT": "Muscat International Airport",
	"AMM": "Queen Alia International Airport",
	"BEY": "Rafic Hariri International Airport",
	"CAI": "Cairo International Airport",
	"IST": "Istanbul Airport",
	"LHR": "Heathrow Airport",
	"CDG": "Charles de Gaulle Airport",
	"FRA": "Frankfurt Airport",
	"BOM": "Chhatrapati Shivaji Airport",
	"DEL": "Indira Gandhi International Airport",
	"BKK": "Suvarnabhumi Airport",
	"KUL": "Kuala Lumpur International Airport",
	"SIN": "Changi Airport",
	"JFK": "John F. Kennedy International Airport",
	"LAX": "Los Angeles International Airport",
	"SYD": "Kingsford Smith Airport",
}

var classNames = map[models.CabinClass]string{
	models.CabinEconomy:  "Economy Class",
	models.CabinPremium:  "Premium Economy",
	models.CabinBusiness: "Business Class",
	models.CabinFirst:    "First Class",
}

// FlightTimes holds the display times for a route.
type FlightTimes struct {
	Duration   string `json:"duration"`
	DepartTime string `json:"departTime"`
	ArriveTime string `json:"arriveTime"`
}

var defaultTimes = FlightTimes{Duration: "2h 30m", DepartTime: "10:00", ArriveTime: "12:30"}

var routeTimes = map[string]FlightTimes{
	"KWI-DXB": {Duration: "1h 20m", DepartTime: "08:00", ArriveTime: "09:20"},
	"KWI-RUH": {Duration: "1h 15m", DepartTime: "07:30", ArriveTime: "08:45"},
	"KWI-DOH": {Duration: "1h 10m", DepartTime: "09:15", ArriveTime: "10:25"},
	"KWI-BAH": {Duration: "45m", DepartTime: "06:45", ArriveTime: "07:30"},
	"KWI-MCT": {Duration: "1h 30m", DepartTime: "10:30", ArriveTime: "12:00"},
	"KWI-AMM": {Duration: "2h 15m", DepartTime: "14:20", ArriveTime: "16:35"},
	"KWI-BEY": {Duration: "2h 30m", DepartTime: "15:45", ArriveTime: "18:15"},
	"KWI-CAI": {Duration: "3h 45m", DepartTime: "11:30", ArriveTime: "15:15"},
	"KWI-IST": {Duration: "4h 30m", DepartTime: "13:20", ArriveTime: "17:50"},
	"KWI-LHR": {Duration: "7h 15m", DepartTime: "02:30", ArriveTime: "09:45"},
	"KWI-CDG": {Duration: "6h 45m", DepartTime: "03:15", ArriveTime: "10:00"},
	"KWI-FRA": {Duration: "6h 30m", DepartTime: "01:45", ArriveTime: "08:15"},
	"KWI-BOM": {Duration: "3h 30m", DepartTime: "16:30", ArriveTime: "20:00"},
	"KWI-DEL": {Duration: "4h 15m", DepartTime: "17:45", ArriveTime: "22:00"},
	"KWI-BKK": {Duration: "6h 45m", DepartTime: "23:30", ArriveTime: "06:15+1"},
	"KWI-KUL": {Duration: "7h 30m", DepartTime: "22:15", ArriveTime: "05:45+1"},
	"KWI-SIN": {Duration: "7h 45m", DepartTime: "21:30", ArriveTime: "05:15+1"},
	"KWI-JFK": {Duration: "13h 30m", DepartTime: "14:30", ArriveTime: "04:00+1"},
	"KWI-LAX": {Duration: "16h 15m", DepartTime: "12:45", ArriveTime: "04:00+1"},
}

// CityName resolves an airport code to its city, falling back to the
// generic value for unknown codes.
func CityName(code string) string {
	if name, ok := cityNames[code]; ok {
		return name
	}
	return FallbackCity
}

// AirportName resolves an airport code to its airport display name.
func AirportName(code string) string {
	if name, ok := airportNames[code]; ok {
		return name
	}
	return FallbackAirport
}

// ClassName resolves a cabin class to its display name.
func ClassName(class models.CabinClass) string {
	if name, ok := classNames[class]; ok {
		return name
	}
	return FallbackClass
}

// RouteTimes resolves display times for a route, trying the direct key,
// then the reverse, then the generic default.
func RouteTimes(origin, destination string) FlightTimes {
	if t, ok := routeTimes[origin+"-"+destination]; ok {
		return t
	}
	if t, ok := routeTimes[destination+"-"+origin]; ok {
		return t
	}
	return defaultTimes
}

const refAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewBookingRef generates a booking reference: a two-letter carrier prefix
// from the flight number plus six random base-36 uppercase characters.
func NewBookingRef(flightNumber string, rng *rand.Rand) string {
	prefix := "JZ"
	if len(flightNumber) >= 2 {
		prefix = strings.ToUpper(flightNumber[:2])
	}
	var b strings.Builder
	b.WriteString(prefix)
	for i := 0; i < 6; i++ {
		b.WriteByte(refAlphabet[rng.Intn(len(refAlphabet))])
	}
	return b.String()
}

// ViewModel is the assembled confirmation display record.
type ViewModel struct {
	BookingRef   string                   `json:"bookingRef"`
	FlightID     string                   `json:"flightId"`
	OriginCity   string                   `json:"originCity"`
	OriginPort   string                   `json:"originAirport"`
	DestCity     string                   `json:"destinationCity"`
	DestPort     string                   `json:"destinationAirport"`
	CabinClass   string                   `json:"cabinClass"`
	Times        FlightTimes              `json:"times"`
	DepartDate   time.Time                `json:"departDate"`
	Seats        []string                 `json:"seats"`
	Passengers   []models.PassengerRecord `json:"passengers"`
	Price        models.PriceBreakdown    `json:"price"`
}

// Build assembles the confirmation view-model from immutable snapshots.
func Build(b models.BookingConfirmation) ViewModel {
	return ViewModel{
		BookingRef: b.BookingRef,
		FlightID:   b.FlightID,
		OriginCity: CityName(b.Criteria.Origin),
		OriginPort: AirportName(b.Criteria.Origin),
		DestCity:   CityName(b.Criteria.Destination),
		DestPort:   AirportName(b.Criteria.Destination),
		CabinClass: ClassName(b.Criteria.CabinClass),
		Times:      RouteTimes(b.Criteria.Origin, b.Criteria.Destination),
		DepartDate: b.Criteria.DepartDate,
		Seats:      b.Seats,
		Passengers: b.Passengers,
		Price:      b.Price,
	}
}
