package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfare/booking-wizard/internal/models"
)

func testSeats() []models.Seat {
	return []models.Seat{
		{ID: "15A", Status: models.SeatStatusAvailable},
		{ID: "15B", Status: models.SeatStatusAvailable},
		{ID: "15C", Status: models.SeatStatusAvailable},
		{ID: "15D", Status: models.SeatStatusOccupied},
	}
}

func TestToggle_AddAndRemove(t *testing.T) {
	sel := NewSelection(testSeats(), 2)

	assert.True(t, sel.Toggle("15A"))
	assert.Equal(t, []string{"15A"}, sel.Selected())

	assert.True(t, sel.Toggle("15A"), "toggling a selected seat removes it")
	assert.Empty(t, sel.Selected())
}

func TestToggle_OccupiedAndUnknownAreNoOps(t *testing.T) {
	sel := NewSelection(testSeats(), 2)

	assert.False(t, sel.Toggle("15D"))
	assert.False(t, sel.Toggle("99Z"))
	assert.Empty(t, sel.Selected())
}

func TestToggle_BoundedByPassengerCount(t *testing.T) {
	sel := NewSelection(testSeats(), 2)

	assert.True(t, sel.Toggle("15A"))
	assert.True(t, sel.Toggle("15B"))
	assert.False(t, sel.Toggle("15C"), "a full selection rejects additions")
	assert.Equal(t, []string{"15A", "15B"}, sel.Selected())

	// Removing one makes room again.
	assert.True(t, sel.Toggle("15A"))
	assert.True(t, sel.Toggle("15C"))
	assert.Equal(t, []string{"15B", "15C"}, sel.Selected())
}

func TestFreeze_RequiresCompleteSelection(t *testing.T) {
	sel := NewSelection(testSeats(), 2)
	sel.Toggle("15A")

	_, err := sel.Freeze()
	assert.ErrorIs(t, err, ErrSelectionIncomplete)

	sel.Toggle("15B")
	seats, err := sel.Freeze()
	require.NoError(t, err)
	assert.Equal(t, []string{"15A", "15B"}, seats)

	assert.False(t, sel.Toggle("15A"), "frozen selections are immutable")
}

func TestDerivePrice(t *testing.T) {
	price := DerivePrice(2, 2)
	assert.Equal(t, 90, price.BaseFare)
	assert.Equal(t, 8, price.Taxes)
	assert.Equal(t, 10, price.SeatFees)
	assert.Equal(t, 108, price.Total)
}

func TestDerivePrice_IgnoresSurcharges(t *testing.T) {
	// The total depends only on counts; which seats were chosen is
	// irrelevant to checkout pricing.
	assert.Equal(t, DerivePrice(3, 3), DerivePrice(3, 3))
	assert.Equal(t, 45+8+5, DerivePrice(1, 1).Total)
}

func TestValidatePassengers(t *testing.T) {
	complete := models.PassengerRecord{
		FirstName: "Noura", LastName: "AlSabah",
		DateOfBirth: "1990-04-12", Gender: "female", Email: "noura@example.com",
	}

	errs, err := ValidatePassengers([]models.PassengerRecord{complete, complete}, 2)
	require.NoError(t, err)
	assert.True(t, errs.Empty())

	_, err = ValidatePassengers([]models.PassengerRecord{complete}, 2)
	assert.ErrorIs(t, err, ErrPassengerCountMismatch)

	incomplete := complete
	incomplete.Email = ""
	errs, err = ValidatePassengers([]models.PassengerRecord{complete, incomplete}, 2)
	require.NoError(t, err)
	assert.Contains(t, errs, "passenger.1")
	assert.NotContains(t, errs, "passenger.0")
}
