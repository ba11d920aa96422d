package models

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusOccupied  SeatStatus = "occupied"
	SeatStatusSelected  SeatStatus = "selected"
)

type SeatPosition string

const (
	SeatPositionWindow SeatPosition = "window"
	SeatPositionMiddle SeatPosition = "middle"
	SeatPositionAisle  SeatPosition = "aisle"
)

// Seat is one position in a generated seat map. The ID is row+letter
// ("12C") and is unique within a map.
type Seat struct {
	ID        string       `json:"id"`
	Row       int          `json:"row"`
	Letter    string       `json:"letter"`
	Class     CabinClass   `json:"class"`
	Status    SeatStatus   `json:"status"`
	Surcharge int          `json:"surcharge"`
	Position  SeatPosition `json:"position"`
	Features  []string     `json:"features,omitempty"`
}
