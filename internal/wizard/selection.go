package wizard

import (
	"errors"

	"github.com/skyfare/booking-wizard/internal/models"
)

var (
	ErrSelectionIncomplete = errors.New("seat selection incomplete")
	ErrUnknownSeat         = errors.New("unknown seat id")
)

// Selection tracks 0..passengerCount chosen seats against a frozen seat map.
// The map is never regenerated for the lifetime of the selection.
type Selection struct {
	limit    int
	seats    map[string]models.Seat
	selected []string
	frozen   bool
}

// NewSelection builds a selection bounded by the passenger count. The seat
// slice is indexed once; later map regenerations must not be fed back in.
func NewSelection(seats []models.Seat, passengerCount int) *Selection {
	index := make(map[string]models.Seat, len(seats))
	for _, s := range seats {
		index[s.ID] = s
	}
	return &Selection{limit: passengerCount, seats: index}
}

// Toggle flips a seat in or out of the selection. Occupied seats and unknown
// ids are no-ops, as is adding when the selection is already full. Returns
// whether the selection changed.
func (s *Selection) Toggle(seatID string) bool {
	if s.frozen {
		return false
	}
	seat, ok := s.seats[seatID]
	if !ok || seat.Status == models.SeatStatusOccupied {
		return false
	}

	for i, id := range s.selected {
		if id == seatID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return true
		}
	}

	if len(s.selected) >= s.limit {
		return false
	}
	s.selected = append(s.selected, seatID)
	return true
}

// Selected returns the chosen seat ids in selection order.
func (s *Selection) Selected() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

func (s *Selection) Count() int { return len(s.selected) }

// Complete reports whether exactly passengerCount seats are chosen.
func (s *Selection) Complete() bool { return len(s.selected) == s.limit }

// Freeze finalizes the selection for handoff to passenger collection.
// Partial selections cannot continue.
func (s *Selection) Freeze() ([]string, error) {
	if !s.Complete() {
		return nil, ErrSelectionIncomplete
	}
	s.frozen = true
	return s.Selected(), nil
}

// Seat looks up a seat in the frozen map.
func (s *Selection) Seat(seatID string) (models.Seat, error) {
	seat, ok := s.seats[seatID]
	if !ok {
		return models.Seat{}, ErrUnknownSeat
	}
	return seat, nil
}
