package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/skyfare/booking-wizard/internal/confirmation"
	"github.com/skyfare/booking-wizard/internal/models"
	"github.com/skyfare/booking-wizard/internal/service"
)

// MockBookingService is a mock implementation of BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateSession(ctx context.Context) (*service.SessionSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionSnapshot), args.Error(1)
}

func (m *MockBookingService) ResumeSession(ctx context.Context, q url.Values) (*service.SessionSnapshot, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionSnapshot), args.Error(1)
}

func (m *MockBookingService) GetSession(ctx context.Context, sessionID string) (*service.SessionSnapshot, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionSnapshot), args.Error(1)
}

func (m *MockBookingService) ExportState(ctx context.Context, sessionID string) (url.Values, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(url.Values), args.Error(1)
}

func (m *MockBookingService) EndSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockBookingService) SearchFlights(ctx context.Context, sessionID string, criteria models.SearchCriteria) ([]models.FlightOffer, error) {
	args := m.Called(ctx, sessionID, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlightOffer), args.Error(1)
}

func (m *MockBookingService) SelectFlight(ctx context.Context, sessionID, flightID string) ([]models.Seat, error) {
	args := m.Called(ctx, sessionID, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Seat), args.Error(1)
}

func (m *MockBookingService) GetSeatMap(ctx context.Context, sessionID string) ([]models.Seat, []string, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]models.Seat), args.Get(1).([]string), args.Error(2)
}

func (m *MockBookingService) ToggleSeat(ctx context.Context, sessionID, seatID string) ([]string, error) {
	args := m.Called(ctx, sessionID, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingService) ContinueToPassengers(ctx context.Context, sessionID string) ([]string, models.PriceBreakdown, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, models.PriceBreakdown{}, args.Error(2)
	}
	return args.Get(0).([]string), args.Get(1).(models.PriceBreakdown), args.Error(2)
}

func (m *MockBookingService) SubmitPassengers(ctx context.Context, sessionID string, passengers []models.PassengerRecord) (models.FormErrors, error) {
	args := m.Called(ctx, sessionID, passengers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.FormErrors), args.Error(1)
}

func (m *MockBookingService) SubmitCheckout(ctx context.Context, sessionID string, req models.SubmitCheckoutRequest) (*models.CheckoutStateResponse, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutStateResponse), args.Error(1)
}

func (m *MockBookingService) SubmitOTP(ctx context.Context, sessionID, code string) error {
	args := m.Called(ctx, sessionID, code)
	return args.Error(0)
}

func (m *MockBookingService) CancelCheckout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockBookingService) GetCheckoutState(ctx context.Context, sessionID string) (*models.CheckoutState, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutState), args.Error(1)
}

func (m *MockBookingService) GetConfirmation(ctx context.Context, sessionID string) (*confirmation.ViewModel, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*confirmation.ViewModel), args.Error(1)
}
