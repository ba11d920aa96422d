package models

import (
	"errors"
	"time"
)

// CabinClass is the fare tier selected at search time. It determines the
// selectable seat-map region downstream, not the generated layout.
type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinPremium  CabinClass = "premium"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
	TripMultiCity TripType = "multi-city"
)

var (
	ErrSameAirport        = errors.New("origin and destination must differ")
	ErrNoPassengers       = errors.New("passenger count must be at least 1")
	ErrUnknownCabinClass  = errors.New("unknown cabin class")
	ErrUnknownTripType    = errors.New("unknown trip type")
	ErrMissingAirportCode = errors.New("origin and destination are required")
)

// SearchCriteria is created once at search submission and passed by value
// through every later wizard step.
type SearchCriteria struct {
	Origin         string     `json:"from"`
	Destination    string     `json:"to"`
	DepartDate     time.Time  `json:"departDate"`
	ReturnDate     *time.Time `json:"returnDate,omitempty"`
	PassengerCount int        `json:"passengers"`
	CabinClass     CabinClass `json:"class"`
	TripType       TripType   `json:"tripType"`
}

func (c SearchCriteria) Validate() error {
	if c.Origin == "" || c.Destination == "" {
		return ErrMissingAirportCode
	}
	if c.Origin == c.Destination {
		return ErrSameAirport
	}
	if c.PassengerCount < 1 {
		return ErrNoPassengers
	}
	switch c.CabinClass {
	case CabinEconomy, CabinPremium, CabinBusiness, CabinFirst:
	default:
		return ErrUnknownCabinClass
	}
	switch c.TripType {
	case TripOneWay, TripRoundTrip, TripMultiCity:
	default:
		return ErrUnknownTripType
	}
	return nil
}
