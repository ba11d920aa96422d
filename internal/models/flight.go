package models

// FlightOffer is one generated flight candidate for a route. Offers are
// ephemeral: generated per search, never persisted.
type FlightOffer struct {
	ID           string   `json:"id"`
	AirlineName  string   `json:"airline"`
	FlightNumber string   `json:"flightNumber"`
	Rating       float64  `json:"rating"`
	Origin       string   `json:"from"`
	Destination  string   `json:"to"`
	DepartTime   string   `json:"departTime"`
	ArriveTime   string   `json:"arriveTime"`
	Duration     string   `json:"duration"`
	Stops        int      `json:"stops"`
	Price        int      `json:"price"`
	Currency     string   `json:"currency"`
	AircraftType string   `json:"aircraft"`
	Amenities    []string `json:"amenities"`
}
