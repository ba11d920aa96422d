package flights

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/skyfare/booking-wizard/internal/models"
)

// RouteProfile drives duration, stop count, and base pricing per route.
type RouteProfile struct {
	Duration  string
	Distance  int
	BasePrice int
}

// longHaulDistance is the threshold above which a flight may pick up a stop.
const longHaulDistance = 4000

// defaultRoute is returned for unmapped origin/destination pairs.
var defaultRoute = RouteProfile{Duration: "2h 30m", Distance: 1500, BasePrice: 75}

var routes = map[string]RouteProfile{
	"KWI-DXB": {Duration: "1h 20m", Distance: 815, BasePrice: 45},
	"KWI-RUH": {Duration: "1h 15m", Distance: 550, BasePrice: 40},
	"KWI-DOH": {Duration: "1h 10m", Distance: 380, BasePrice: 35},
	"KWI-BAH": {Duration: "45m", Distance: 280, BasePrice: 25},
	"KWI-MCT": {Duration: "1h 30m", Distance: 850, BasePrice: 50},
	"KWI-AMM": {Duration: "2h 15m", Distance: 1100, BasePrice: 65},
	"KWI-BEY": {Duration: "2h 30m", Distance: 1200, BasePrice: 70},
	"KWI-CAI": {Duration: "3h 45m", Distance: 1800, BasePrice: 85},
	"KWI-IST": {Duration: "4h 30m", Distance: 2200, BasePrice: 120},
	"KWI-LHR": {Duration: "7h 15m", Distance: 5500, BasePrice: 180},
	"KWI-CDG": {Duration: "6h 45m", Distance: 5200, BasePrice: 175},
	"KWI-FRA": {Duration: "6h 30m", Distance: 4900, BasePrice: 170},
	"KWI-BOM": {Duration: "3h 30m", Distance: 2800, BasePrice: 95},
	"KWI-DEL": {Duration: "4h 15m", Distance: 3200, BasePrice: 110},
	"KWI-BKK": {Duration: "6h 45m", Distance: 5800, BasePrice: 190},
	"KWI-KUL": {Duration: "7h 30m", Distance: 6200, BasePrice: 200},
	"KWI-SIN": {Duration: "7h 45m", Distance: 6400, BasePrice: 205},
	"KWI-JFK": {Duration: "13h 30m", Distance: 11000, BasePrice: 320},
	"KWI-LAX": {Duration: "16h 15m", Distance: 13500, BasePrice: 380},
}

type airline struct {
	Name   string
	Code   string
	Rating float64
}

var airlines = []airline{
	{Name: "Jazeera Airways", Code: "JZ", Rating: 4.5},
	{Name: "Kuwait Airways", Code: "KU", Rating: 4.3},
	{Name: "Emirates", Code: "EK", Rating: 4.8},
	{Name: "Saudia", Code: "SV", Rating: 4.2},
	{Name: "Qatar Airways", Code: "QR", Rating: 4.7},
	{Name: "Etihad Airways", Code: "EY", Rating: 4.4},
	{Name: "flynas", Code: "XY", Rating: 4.0},
	{Name: "flydubai", Code: "FZ", Rating: 4.1},
}

var departTimes = []string{"06:30", "08:15", "14:20", "19:45", "22:10"}

var aircraftTypes = []string{"Boeing 737-800", "Airbus A320", "Boeing 777", "Airbus A330"}

// offersPerRoute is how many candidates a search produces.
const offersPerRoute = 4

// Generator produces flight candidates for a route. The random source is
// injected so tests can pin the jitter.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator() *Generator {
	return &Generator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewGeneratorWithSource creates a generator with a fixed random source.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Lookup resolves the route profile for a pair of airport codes, trying the
// direct key, then the reverse, then the generic default.
func Lookup(origin, destination string) RouteProfile {
	if r, ok := routes[origin+"-"+destination]; ok {
		return r
	}
	if r, ok := routes[destination+"-"+origin]; ok {
		return r
	}
	return defaultRoute
}

// Generate returns an ordered, non-empty list of offers for the route.
// Ordering follows the fixed departure-time table; it is never re-sorted by
// price or duration. Price and stop count carry random jitter, so callers
// must memoize the result for the lifetime of a wizard session.
func (g *Generator) Generate(origin, destination string) []models.FlightOffer {
	route := Lookup(origin, destination)
	durationMin := parseDurationLabel(route.Duration)

	offers := make([]models.FlightOffer, 0, offersPerRoute)
	for i, a := range airlines[:offersPerRoute] {
		depart := departTimes[i]
		arrive := addMinutes(depart, durationMin)

		multiplier := 1 + float64(i)*0.15 + g.rng.Float64()*0.3
		price := int(math.Round(float64(route.BasePrice) * multiplier))

		stops := 0
		if route.Distance > longHaulDistance && g.rng.Float64() > 0.6 {
			stops = 1
		}

		offers = append(offers, models.FlightOffer{
			ID:           fmt.Sprintf("%s%d", a.Code, 100+i),
			AirlineName:  a.Name,
			FlightNumber: fmt.Sprintf("%s%d", a.Code, 100+i),
			Rating:       a.Rating,
			Origin:       origin,
			Destination:  destination,
			DepartTime:   depart,
			ArriveTime:   arrive,
			Duration:     route.Duration,
			Stops:        stops,
			Price:        price,
			Currency:     "KWD",
			AircraftType: aircraftTypes[i%len(aircraftTypes)],
			Amenities:    amenitiesFor(i),
		})
	}
	return offers
}

func amenitiesFor(index int) []string {
	switch {
	case index < 2:
		return []string{"wifi", "meals", "entertainment"}
	case index < 3:
		return []string{"wifi", "entertainment"}
	default:
		return []string{"wifi"}
	}
}

// parseDurationLabel converts labels like "1h 20m" or "45m" to minutes.
func parseDurationLabel(label string) int {
	total := 0
	for _, part := range strings.Fields(label) {
		switch {
		case strings.HasSuffix(part, "h"):
			if v, err := strconv.Atoi(strings.TrimSuffix(part, "h")); err == nil {
				total += v * 60
			}
		case strings.HasSuffix(part, "m"):
			if v, err := strconv.Atoi(strings.TrimSuffix(part, "m")); err == nil {
				total += v
			}
		}
	}
	return total
}

// addMinutes adds a duration to an HH:MM label, wrapping past midnight.
func addMinutes(clock string, minutes int) string {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return clock
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	total := (h*60 + m + minutes) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
