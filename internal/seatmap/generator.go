package seatmap

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/skyfare/booking-wizard/internal/models"
)

// Cabin layout constants. The topology is fixed regardless of the requested
// cabin class or passenger count; those only bound downstream selection.
const (
	FirstRowStart    = 1
	FirstRowEnd      = 3
	BusinessRowStart = 5
	BusinessRowEnd   = 8
	PremiumRowStart  = 10
	PremiumRowEnd    = 13
	EconomyRowStart  = 15
	EconomyRowEnd    = 35

	FirstSurcharge    = 200
	BusinessSurcharge = 100
	PremiumSurcharge  = 50
	ExitRowSurcharge  = 25
)

// Occupancy thresholds per tier: a seat is occupied when the roll exceeds
// the threshold, so lower tiers fill up more.
const (
	firstOccupiedAbove    = 0.8
	businessOccupiedAbove = 0.7
	premiumOccupiedAbove  = 0.6
	economyOccupiedAbove  = 0.5
)

var (
	wideLetters   = []string{"A", "B", "E", "F"} // 2-2 cabins
	narrowLetters = []string{"A", "B", "C", "D", "E", "F"}

	exitRows = map[int]bool{18: true, 28: true}
)

// Generator builds full-aircraft seat maps. Occupancy is re-rolled on every
// call, so a map must be generated once per selection session and held
// immutably after that; regenerating mid-session invalidates selections.
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

// Generate produces the aircraft layout. Cabin class and passenger count are
// accepted for interface symmetry but do not change the topology.
func (g *Generator) Generate(_ models.CabinClass, _ int) []models.Seat {
	seats := make([]models.Seat, 0, 236)

	for row := FirstRowStart; row <= FirstRowEnd; row++ {
		for i, letter := range wideLetters {
			seats = append(seats, models.Seat{
				ID:        seatID(row, letter),
				Row:       row,
				Letter:    letter,
				Class:     models.CabinFirst,
				Status:    g.roll(firstOccupiedAbove),
				Surcharge: FirstSurcharge,
				Position:  widePosition(i),
				Features:  []string{"lie-flat seat", "premium dining", "priority boarding", "extra space"},
			})
		}
	}

	for row := BusinessRowStart; row <= BusinessRowEnd; row++ {
		for i, letter := range wideLetters {
			seats = append(seats, models.Seat{
				ID:        seatID(row, letter),
				Row:       row,
				Letter:    letter,
				Class:     models.CabinBusiness,
				Status:    g.roll(businessOccupiedAbove),
				Surcharge: BusinessSurcharge,
				Position:  widePosition(i),
				Features:  []string{"recliner seat", "enhanced meal", "priority boarding"},
			})
		}
	}

	for row := PremiumRowStart; row <= PremiumRowEnd; row++ {
		for i, letter := range narrowLetters {
			seats = append(seats, models.Seat{
				ID:        seatID(row, letter),
				Row:       row,
				Letter:    letter,
				Class:     models.CabinPremium,
				Status:    g.roll(premiumOccupiedAbove),
				Surcharge: PremiumSurcharge,
				Position:  narrowPosition(i),
				Features:  []string{"extra legroom", "upgraded meal"},
			})
		}
	}

	for row := EconomyRowStart; row <= EconomyRowEnd; row++ {
		for i, letter := range narrowLetters {
			seat := models.Seat{
				ID:       seatID(row, letter),
				Row:      row,
				Letter:   letter,
				Class:    models.CabinEconomy,
				Status:   g.roll(economyOccupiedAbove),
				Position: narrowPosition(i),
			}
			if exitRows[row] {
				seat.Surcharge = ExitRowSurcharge
				seat.Features = []string{"exit row", "extra legroom"}
			}
			seats = append(seats, seat)
		}
	}

	return seats
}

func (g *Generator) roll(occupiedAbove float64) models.SeatStatus {
	if g.rng.Float64() > occupiedAbove {
		return models.SeatStatusOccupied
	}
	return models.SeatStatusAvailable
}

func seatID(row int, letter string) string {
	return fmt.Sprintf("%d%s", row, letter)
}

// widePosition maps a 2-2 cabin index: outer seats are windows, the rest
// sit on the aisle.
func widePosition(index int) models.SeatPosition {
	if index == 0 || index == 3 {
		return models.SeatPositionWindow
	}
	return models.SeatPositionAisle
}

// narrowPosition maps a 3-3 cabin index to window/middle/aisle.
func narrowPosition(index int) models.SeatPosition {
	switch index {
	case 0, 5:
		return models.SeatPositionWindow
	case 2, 3:
		return models.SeatPositionAisle
	default:
		return models.SeatPositionMiddle
	}
}
