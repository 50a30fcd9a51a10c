package flights

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/latency"
	"github.com/Domenick1991/skywings/internal/session"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	Generate(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error)
	Search(ctx context.Context, sessionID string, criteria domain.SearchCriteria) ([]domain.Flight, error)
	Results(ctx context.Context, sessionID string, bucket domain.TimeOfDay) ([]domain.Flight, error)
	Status(ctx context.Context, flightID string, date time.Time) (domain.FlightStatus, error)
}

type Delays struct {
	Search time.Duration
	Status time.Duration
}

type FlightService struct {
	log       *zap.Logger
	sessions  session.Store
	generator *Generator
	status    *StatusLookup
	latency   latency.Simulator
	delays    Delays
}

type FlightServiceOption func(*FlightService)

func WithLogger(log *zap.Logger) FlightServiceOption {
	return func(s *FlightService) {
		if log != nil {
			s.log = log
		}
	}
}

func WithLatency(sim latency.Simulator, delays Delays) FlightServiceOption {
	return func(s *FlightService) {
		s.latency = sim
		s.delays = delays
	}
}

func NewFlightService(sessions session.Store, generator *Generator, status *StatusLookup, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{
		log:       zap.NewNop(),
		sessions:  sessions,
		generator: generator,
		status:    status,
		latency:   &latency.Instant{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate runs the generator without touching any session.
func (s *FlightService) Generate(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	const op = "flights.Generate"
	_, span := otel.Tracer("skywings/flights").Start(ctx, op)
	defer span.End()

	if err := criteria.Validate(); err != nil {
		s.log.Warn("invalid search criteria", zap.String("op", op), zap.Error(err))
		span.SetStatus(otelcodes.Error, "invalid criteria")
		return nil, err
	}
	return s.generator.Generate(criteria), nil
}

// Search stores the criteria and freshly generated results in the
// session after the simulated search latency.
func (s *FlightService) Search(ctx context.Context, sessionID string, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	const op = "flights.Search"
	ctx, span := otel.Tracer("skywings/flights").Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("search.route", criteria.Origin+"-"+criteria.Destination),
	)

	logger := s.log.With(zap.String("op", op), zap.String("session_id", sessionID))

	if err := criteria.Validate(); err != nil {
		logger.Warn("invalid search criteria", zap.Error(err))
		span.SetStatus(otelcodes.Error, "invalid criteria")
		return nil, err
	}

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

	s.latency.Wait(ctx, s.delays.Search)

	results := s.generator.Generate(criteria)
	sess.Search = &criteria
	sess.Flights = results
	sess.UpdatedAt = time.Now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		logger.Error("failed to save session", zap.Error(err))
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("search.results", len(results)))
	logger.Info("flights generated",
		zap.String("origin", criteria.Origin),
		zap.String("destination", criteria.Destination),
		zap.String("cabin_class", string(criteria.CabinClass)),
		zap.Int("results", len(results)),
	)
	return results, nil
}

func (s *FlightService) Results(ctx context.Context, sessionID string, bucket domain.TimeOfDay) ([]domain.Flight, error) {
	switch bucket {
	case "", domain.TimeOfDayAll, domain.TimeOfDayMorning, domain.TimeOfDayAfternoon, domain.TimeOfDayEvening:
	default:
		verr := &domain.ValidationError{}
		verr.Add("time_of_day", "must be one of: all morning afternoon evening")
		return nil, verr
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Search == nil {
		return nil, domain.ErrNoSearch
	}
	return FilterByTimeOfDay(sess.Flights, bucket), nil
}

func (s *FlightService) Status(ctx context.Context, flightID string, date time.Time) (domain.FlightStatus, error) {
	const op = "flights.Status"
	ctx, span := otel.Tracer("skywings/flights").Start(ctx, op)
	defer span.End()

	verr := &domain.ValidationError{}
	if strings.TrimSpace(flightID) == "" {
		verr.Add("flight", "is required")
	}
	if date.IsZero() {
		verr.Add("date", "is required")
	}
	if err := verr.OrNil(); err != nil {
		span.SetStatus(otelcodes.Error, "invalid status query")
		return domain.FlightStatus{}, err
	}

	s.latency.Wait(ctx, s.delays.Status)

	st := s.status.Lookup(flightID, date)
	span.SetAttributes(attribute.String("flight.id", st.FlightID), attribute.String("flight.status", string(st.Status)))
	s.log.Info("flight status synthesized",
		zap.String("op", op),
		zap.String("flight_id", st.FlightID),
		zap.String("status", string(st.Status)),
	)
	return st, nil
}

var _ FlightUseCase = (*FlightService)(nil)
