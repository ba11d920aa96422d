package models

import "time"

// PriceBreakdown is the flat checkout pricing: base fare per passenger,
// fixed taxes, and a per-seat selection fee.
type PriceBreakdown struct {
	BaseFare int `json:"base"`
	Taxes    int `json:"taxes"`
	SeatFees int `json:"seatFees"`
	Total    int `json:"total"`
}

// BookingConfirmation is the terminal booking record. Everything in it is a
// snapshot; nothing references live session state.
type BookingConfirmation struct {
	BookingRef string            `json:"bookingRef"`
	FlightID   string            `json:"flightId"`
	Criteria   SearchCriteria    `json:"criteria"`
	Seats      []string          `json:"seats"`
	Passengers []PassengerRecord `json:"passengers"`
	Price      PriceBreakdown    `json:"price"`
	CreatedAt  time.Time         `json:"createdAt"`
}
