// Package email delivers receipt notifications. Delivery is simulated:
// messages are logged, never sent.
package email

import (
	"context"
	"errors"

	"github.com/Domenick1991/skywings/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var ErrNoRecipient = errors.New("notification has no recipient")

type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sender{log: log.With(zap.String("component", "email"))}
}

func (s *Sender) Send(_ context.Context, event kafka.ReceiptEmailEvent) error {
	if event.Email == "" {
		return ErrNoRecipient
	}
	s.log.Info("receipt e-mail delivered",
		zap.String("to", event.Email),
		zap.String("subject", event.Subject),
		zap.String("reference", event.Reference),
		zap.Int("body_bytes", len(event.Body)),
	)
	return nil
}

// HandleMessage is the notifications consumer callback. Malformed or
// undeliverable messages are logged and skipped so one bad record does
// not stall the partition.
func (s *Sender) HandleMessage(ctx context.Context, msg kafkago.Message) error {
	event, ok, err := kafka.DecodeReceiptEmail(msg)
	if err != nil {
		s.log.Warn("skipping malformed notification", zap.Int64("offset", msg.Offset), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	if err := s.Send(ctx, event); err != nil {
		s.log.Warn("receipt e-mail not delivered", zap.String("reference", event.Reference), zap.Error(err))
	}
	return nil
}
