package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/skywings/config"
	"github.com/Domenick1991/skywings/internal/cache"
	"github.com/Domenick1991/skywings/internal/currency"
	"github.com/Domenick1991/skywings/internal/kafka"
	"github.com/Domenick1991/skywings/internal/latency"
	"github.com/Domenick1991/skywings/internal/random"
	"github.com/Domenick1991/skywings/internal/service/booking"
	"github.com/Domenick1991/skywings/internal/service/flights"
	"github.com/Domenick1991/skywings/internal/session"
	"go.uber.org/zap"
)

const pingTimeout = 3 * time.Second

// Services is the wired application graph shared by the HTTP and gRPC
// transports.
type Services struct {
	Flights   *flights.FlightService
	Bookings  *booking.BookingService
	Converter *currency.Converter

	closers []func() error
}

func NewServices(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Services, error) {
	s := &Services{Converter: currency.NewConverter()}

	store, err := s.sessionStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	rnd := random.New(cfg.Random.Seed)
	clock := latency.Clock{}

	s.Flights = flights.NewFlightService(store,
		flights.NewGenerator(rnd),
		flights.NewStatusLookup(rnd),
		flights.WithLogger(log),
		flights.WithLatency(clock, flights.Delays{Search: cfg.Latency.Search, Status: cfg.Latency.Status}),
	)

	opts := []booking.BookingServiceOption{
		booking.WithLogger(log),
		booking.WithPaymentLatency(clock, cfg.Latency.Payment),
		booking.WithDefaultCurrency(cfg.Currency.Default),
	}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		s.closers = append(s.closers, producer.Close)

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		if err := producer.CheckConnection(pingCtx); err != nil {
			log.Warn("kafka is unreachable, events will be retried per publish", zap.Error(err))
		}
		cancel()

		opts = append(opts, booking.WithProducer(producer, cfg.Kafka.BookingTopic, cfg.Kafka.NotificationsTopic))
	}
	s.Bookings = booking.NewBookingService(store, s.Converter, booking.NewReferenceGenerator(rnd), opts...)

	return s, nil
}

func (s *Services) sessionStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (session.Store, error) {
	const op = "bootstrap.sessionStore"

	if cfg.Session.Store != config.SessionStoreRedis {
		log.Info("using in-memory session store", zap.Duration("ttl", cfg.Session.TTL))
		return session.NewMemoryStore(cfg.Session.TTL), nil
	}

	client := cache.NewRedisClient(cfg.Redis)
	store := cache.NewRedisSessionStore(client, cfg.Session.TTL, cfg.Session.LockTTL)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.closers = append(s.closers, client.Close)
	log.Info("using redis session store", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Session.TTL))
	return store, nil
}

// Close releases external clients in reverse order of creation.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
