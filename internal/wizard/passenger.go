package wizard

import (
	"errors"
	"fmt"

	"github.com/skyfare/booking-wizard/internal/models"
)

var ErrPassengerCountMismatch = errors.New("one passenger record required per selected seat")

// ValidatePassengers checks one complete record per selected seat, in seat
// order. Returns field errors keyed "passenger.<index>".
func ValidatePassengers(passengers []models.PassengerRecord, requiredSeats int) (models.FormErrors, error) {
	if len(passengers) != requiredSeats {
		return nil, ErrPassengerCountMismatch
	}

	errs := models.FormErrors{}
	for i, p := range passengers {
		if !p.Complete() {
			errs[fmt.Sprintf("passenger.%d", i)] = "first name, last name, date of birth, gender and email are required"
		}
	}
	return errs, nil
}
