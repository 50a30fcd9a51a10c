package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/skywings/internal/currency"
	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/kafka"
	"github.com/Domenick1991/skywings/internal/latency"
	"github.com/Domenick1991/skywings/internal/receipt"
	"github.com/Domenick1991/skywings/internal/session"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	Open(ctx context.Context) (*domain.Session, error)
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
	SetCurrency(ctx context.Context, sessionID, code string) (*domain.Session, error)
	SelectFlight(ctx context.Context, sessionID, flightID string) (*domain.Booking, error)
	Current(ctx context.Context, sessionID string) (*domain.Booking, error)
	SubmitPassengers(ctx context.Context, sessionID string, passengers []domain.Passenger, contact domain.Contact) (*domain.Booking, error)
	Back(ctx context.Context, sessionID string) (*domain.Booking, error)
	SubmitPayment(ctx context.Context, sessionID string, method domain.PaymentMethod) (*domain.Booking, error)
	Close(ctx context.Context, sessionID string) error
	Receipt(ctx context.Context, sessionID string) (*receipt.Receipt, error)
	EmailReceipt(ctx context.Context, sessionID string) (Acknowledgement, error)
	DownloadReceipt(ctx context.Context, sessionID string) (Acknowledgement, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// Acknowledgement answers receipt actions that only simulate delivery.
type Acknowledgement struct {
	Action    string `json:"action"`
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

type BookingService struct {
	log                *zap.Logger
	sessions           session.Store
	converter          *currency.Converter
	references         *ReferenceGenerator
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	latency            latency.Simulator
	paymentDelay       time.Duration
	defaultCurrency    string
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithLogger(log *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithProducer enables booking and notification events. An empty topic
// disables that stream.
func WithProducer(p Producer, bookingTopic, notificationsTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = p
		s.bookingTopic = bookingTopic
		s.notificationsTopic = notificationsTopic
	}
}

func WithPaymentLatency(sim latency.Simulator, d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.latency = sim
		s.paymentDelay = d
	}
}

func WithDefaultCurrency(code string) BookingServiceOption {
	return func(s *BookingService) {
		if code != "" {
			s.defaultCurrency = code
		}
	}
}

func NewBookingService(
	sessions session.Store,
	converter *currency.Converter,
	references *ReferenceGenerator,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		log:             zap.NewNop(),
		sessions:        sessions,
		converter:       converter,
		references:      references,
		latency:         &latency.Instant{},
		defaultCurrency: currency.Base,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Open(ctx context.Context) (*domain.Session, error) {
	const op = "booking.Open"
	ctx, span := s.start(ctx, op, "")
	defer span.End()

	info, err := s.converter.Lookup(s.defaultCurrency)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	now := s.now()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Currency:  info.Code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create session: %w", err)
	}

	span.SetAttributes(attribute.String("session.id", sess.ID))
	s.log.Info("session opened", zap.String("op", op), zap.String("session_id", sess.ID))
	return sess, nil
}

func (s *BookingService) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// SetCurrency switches the display currency. Bookings already confirmed
// keep the currency they were paid in.
func (s *BookingService) SetCurrency(ctx context.Context, sessionID, code string) (*domain.Session, error) {
	const op = "booking.SetCurrency"
	ctx, span := s.start(ctx, op, sessionID)
	defer span.End()

	info, err := s.converter.Lookup(code)
	if err != nil {
		s.log.Warn("unsupported currency", zap.String("op", op), zap.String("currency", code))
		span.SetStatus(otelcodes.Error, "unsupported currency")
		return nil, err
	}

	return s.mutate(ctx, op, sessionID, func(sess *domain.Session) error {
		sess.Currency = info.Code
		return nil
	})
}

func (s *BookingService) SelectFlight(ctx context.Context, sessionID, flightID string) (*domain.Booking, error) {
	const op = "booking.SelectFlight"
	ctx, span := s.start(ctx, op, sessionID)
	defer span.End()
	span.SetAttributes(attribute.String("flight.id", flightID))

	var abandoned *domain.Booking
	sess, err := s.mutate(ctx, op, sessionID, func(sess *domain.Session) error {
		if sess.Search == nil {
			return domain.ErrNoSearch
		}
		flight, ok := sess.FindFlight(flightID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrFlightNotFound, flightID)
		}
		if sess.Booking != nil && !sess.Booking.IsConfirmed() {
			abandoned = sess.Booking
		}
		sess.Booking = NewBooking(*sess.Search, flight, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if abandoned != nil {
		s.publishBooking(ctx, kafka.EventBookingAbandoned, abandoned, sess.Currency)
	}
	return sess.Booking, nil
}

func (s *BookingService) Current(ctx context.Context, sessionID string) (*domain.Booking, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Booking == nil {
		return nil, domain.ErrNoActiveBooking
	}
	return sess.Booking, nil
}

func (s *BookingService) SubmitPassengers(ctx context.Context, sessionID string, passengers []domain.Passenger, contact domain.Contact) (*domain.Booking, error) {
	const op = "booking.SubmitPassengers"
	ctx, span := s.start(ctx, op, sessionID)
	defer span.End()

	sess, err := s.mutate(ctx, op, sessionID, func(sess *domain.Session) error {
		if sess.Booking == nil {
			return domain.ErrNoActiveBooking
		}
		return SubmitPassengers(sess.Booking, passengers, contact)
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Float64("booking.total", sess.Booking.Total))
	return sess.Booking, nil
}

func (s *BookingService) Back(ctx context.Context, sessionID string) (*domain.Booking, error) {
	const op = "booking.Back"
	ctx, span := s.start(ctx, op, sessionID)
	defer span.End()

	sess, err := s.mutate(ctx, op, sessionID, func(sess *domain.Session) error {
		if sess.Booking == nil {
			return domain.ErrNoActiveBooking
		}
		return Back(sess.Booking)
	})
	if err != nil {
		return nil, err
	}
	return sess.Booking, nil
}

// SubmitPayment validates the payment entries, waits for the simulated
// processor and confirms the booking in the session's current currency.
func (s *BookingService) SubmitPayment(ctx context.Context, sessionID string, method domain.PaymentMethod) (*domain.Booking, error) {
	const op = "booking.SubmitPayment"
	ctx, span := s.start(ctx, op, sessionID)
	defer span.End()

	method = NormalizePayment(method)
	sess, err := s.mutate(ctx, op, sessionID, func(sess *domain.Session) error {
		b := sess.Booking
		if b == nil {
			return domain.ErrNoActiveBooking
		}
		switch b.Step {
		case domain.StepConfirmed:
			return domain.ErrBookingFinalized
		case domain.StepPassengers:
			return fmt.Errorf("%w: passenger details must be submitted first", domain.ErrInvalidStep)
		}
		if err := ValidatePayment(method); err != nil {
			return err
		}

		s.latency.Wait(ctx, s.paymentDelay)
		return Confirm(b, method, s.references.Next(), sess.Currency, s.now())
	})
	if err != nil {
		return nil, err
	}

	b := sess.Booking
	span.SetAttributes(attribute.String("booking.reference", b.Reference))
	s.log.Info("booking confirmed",
		zap.String("op", op),
		zap.String("session_id", sessionID),
		zap.String("reference", b.Reference),
		zap.String("flight_id", b.Flight.ID),
		zap.String("payment_kind", string(method.Kind)),
	)
	s.publishBooking(ctx, kafka.EventBookingConfirmed, b, b.Currency)
	return b, nil
}

// Close dismisses the wizard and drops the booking whatever its step.
// Closing without a booking is a no-op.
func (s *BookingService) Close(ctx context.Context, sessionID string) error {
	const op = "booking.Close"
	ctx, span := s.start(ctx, op, sessionID)
	defer span.End()

	var dropped *domain.Booking
	sess, err := s.mutate(ctx, op, sessionID, func(sess *domain.Session) error {
		dropped = sess.Booking
		sess.Booking = nil
		return nil
	})
	if err != nil {
		return err
	}

	if dropped != nil && !dropped.IsConfirmed() {
		s.publishBooking(ctx, kafka.EventBookingAbandoned, dropped, sess.Currency)
	}
	return nil
}

func (s *BookingService) Receipt(ctx context.Context, sessionID string) (*receipt.Receipt, error) {
	b, err := s.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return receipt.Render(b, s.converter)
}

// EmailReceipt queues the rendered receipt for the contact address.
// A failed publish is logged and still acknowledged.
func (s *BookingService) EmailReceipt(ctx context.Context, sessionID string) (Acknowledgement, error) {
	const op = "booking.EmailReceipt"
	ctx, span := s.start(ctx, op, sessionID)
	defer span.End()

	b, err := s.Current(ctx, sessionID)
	if err != nil {
		return Acknowledgement{}, err
	}
	r, err := receipt.Render(b, s.converter)
	if err != nil {
		return Acknowledgement{}, err
	}

	if s.producer != nil && s.notificationsTopic != "" {
		event := kafka.ReceiptEmailEvent{
			Type:       kafka.EventReceiptEmailRequested,
			Reference:  r.Reference,
			Email:      b.Contact.Email,
			Subject:    "Your SkyWings booking " + r.Reference,
			Body:       r.Text(),
			OccurredAt: s.now(),
		}
		if err := s.producer.Publish(ctx, s.notificationsTopic, r.Reference, event); err != nil {
			span.RecordError(err)
			s.log.Warn("failed to publish receipt e-mail request",
				zap.String("op", op),
				zap.String("reference", r.Reference),
				zap.Error(err),
			)
		}
	}

	return Acknowledgement{
		Action:    "email",
		Reference: r.Reference,
		Message:   "Receipt will be sent to " + b.Contact.Email,
	}, nil
}

func (s *BookingService) DownloadReceipt(ctx context.Context, sessionID string) (Acknowledgement, error) {
	b, err := s.Current(ctx, sessionID)
	if err != nil {
		return Acknowledgement{}, err
	}
	if _, err := receipt.Render(b, s.converter); err != nil {
		return Acknowledgement{}, err
	}
	return Acknowledgement{
		Action:    "download",
		Reference: b.Reference,
		Message:   "Receipt PDF download started",
	}, nil
}

// mutate runs fn on the session while holding its in-flight lock and
// saves the result. Nothing is saved when fn fails.
func (s *BookingService) mutate(ctx context.Context, op, sessionID string, fn func(*domain.Session) error) (*domain.Session, error) {
	span := trace.SpanFromContext(ctx)
	logger := s.log.With(zap.String("op", op), zap.String("session_id", sessionID))

	release, err := s.sessions.Lock(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer release()

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := fn(sess); err != nil {
		if domain.IsValidation(err) {
			logger.Warn("validation failed", zap.Error(err))
		} else {
			logger.Info("operation rejected", zap.Error(err))
		}
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	sess.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		logger.Error("failed to save session", zap.Error(err))
		span.RecordError(err)
		return nil, err
	}
	if sess.Booking != nil {
		span.SetAttributes(attribute.String("booking.step", string(sess.Booking.Step)))
	}
	return sess, nil
}

func (s *BookingService) publishBooking(ctx context.Context, eventType string, b *domain.Booking, code string) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}

	total, err := s.converter.Convert(b.Total, code)
	if err != nil {
		code, total = currency.Base, b.Total
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		Reference:  b.Reference,
		FlightID:   b.Flight.ID,
		Email:      b.Contact.Email,
		Total:      total,
		Currency:   code,
		OccurredAt: s.now(),
	}
	key := b.Reference
	if key == "" {
		key = b.Flight.ID
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		s.log.Warn("failed to publish booking event",
			zap.String("type", eventType),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (s *BookingService) start(ctx context.Context, op, sessionID string) (context.Context, trace.Span) {
	ctx, span := otel.Tracer("skywings/booking").Start(ctx, op)
	if sessionID != "" {
		span.SetAttributes(attribute.String("session.id", sessionID))
	}
	return ctx, span
}

var _ BookingUseCase = (*BookingService)(nil)
