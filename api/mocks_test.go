package api

import (
	"context"
	"time"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/receipt"
	"github.com/Domenick1991/skywings/internal/service/booking"
	"github.com/Domenick1991/skywings/internal/service/flights"
	"github.com/stretchr/testify/mock"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Generate(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Search(ctx context.Context, sessionID string, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	args := m.Called(ctx, sessionID, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Results(ctx context.Context, sessionID string, bucket domain.TimeOfDay) ([]domain.Flight, error) {
	args := m.Called(ctx, sessionID, bucket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Status(ctx context.Context, flightID string, date time.Time) (domain.FlightStatus, error) {
	args := m.Called(ctx, flightID, date)
	return args.Get(0).(domain.FlightStatus), args.Error(1)
}

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) session(args mock.Arguments) (*domain.Session, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockBookingUseCase) booking(args mock.Arguments) (*domain.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Open(ctx context.Context) (*domain.Session, error) {
	return m.session(m.Called(ctx))
}

func (m *MockBookingUseCase) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.session(m.Called(ctx, sessionID))
}

func (m *MockBookingUseCase) SetCurrency(ctx context.Context, sessionID, code string) (*domain.Session, error) {
	return m.session(m.Called(ctx, sessionID, code))
}

func (m *MockBookingUseCase) SelectFlight(ctx context.Context, sessionID, flightID string) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, sessionID, flightID))
}

func (m *MockBookingUseCase) Current(ctx context.Context, sessionID string) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, sessionID))
}

func (m *MockBookingUseCase) SubmitPassengers(ctx context.Context, sessionID string, passengers []domain.Passenger, contact domain.Contact) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, sessionID, passengers, contact))
}

func (m *MockBookingUseCase) Back(ctx context.Context, sessionID string) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, sessionID))
}

func (m *MockBookingUseCase) SubmitPayment(ctx context.Context, sessionID string, method domain.PaymentMethod) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, sessionID, method))
}

func (m *MockBookingUseCase) Close(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockBookingUseCase) Receipt(ctx context.Context, sessionID string) (*receipt.Receipt, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receipt.Receipt), args.Error(1)
}

func (m *MockBookingUseCase) EmailReceipt(ctx context.Context, sessionID string) (booking.Acknowledgement, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(booking.Acknowledgement), args.Error(1)
}

func (m *MockBookingUseCase) DownloadReceipt(ctx context.Context, sessionID string) (booking.Acknowledgement, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(booking.Acknowledgement), args.Error(1)
}

var (
	_ flights.FlightUseCase  = (*MockFlightUseCase)(nil)
	_ booking.BookingUseCase = (*MockBookingUseCase)(nil)
)
