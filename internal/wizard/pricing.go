package wizard

import "github.com/skyfare/booking-wizard/internal/models"

// Checkout pricing constants, in KWD. Checkout prices from these flat
// values only; per-offer prices and per-seat surcharges shown earlier in the
// wizard do not feed into the total.
const (
	BaseFarePerPassenger = 45
	FixedTaxes           = 8
	PerSeatFee           = 5
)

// DerivePrice computes the checkout total. The sum depends only on counts,
// so it is invariant under reordering of passengers or seats.
func DerivePrice(passengerCount, seatCount int) models.PriceBreakdown {
	base := BaseFarePerPassenger * passengerCount
	seatFees := PerSeatFee * seatCount
	return models.PriceBreakdown{
		BaseFare: base,
		Taxes:    FixedTaxes,
		SeatFees: seatFees,
		Total:    base + FixedTaxes + seatFees,
	}
}
