package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler processes one record. A returned error stops the
// consumer without committing the record.
type MessageHandler func(ctx context.Context, msg kafka.Message) error

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer commits each record only after its handler succeeded, so a
// crash mid-handler redelivers it.
type Consumer struct {
	reader messageReader
	log    *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *zap.Logger) *Consumer {
	if log == nil {
		log = zap.NewNop()
	}
	return newConsumer(kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	}), log.With(zap.String("topic", topic), zap.String("group_id", groupID)))
}

func newConsumer(r messageReader, log *zap.Logger) *Consumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Consumer{reader: r, log: log}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads until ctx is cancelled, which is reported as a nil error.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	const op = "kafka.Consume"

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if stopped(ctx, err) {
				return nil
			}
			return fmt.Errorf("%s: fetch: %w", op, err)
		}

		if err := handler(ctx, msg); err != nil {
			c.log.Error("message handler failed",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			return fmt.Errorf("%s: handle offset %d: %w", op, msg.Offset, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if stopped(ctx, err) {
				return nil
			}
			return fmt.Errorf("%s: commit: %w", op, err)
		}
		c.log.Debug("message committed", zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))
	}
}

func stopped(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || ctx.Err() != nil
}

// DecodeReceiptEmail unpacks a notifications message. Messages of other
// types report ok=false.
func DecodeReceiptEmail(msg kafka.Message) (ReceiptEmailEvent, bool, error) {
	var event ReceiptEmailEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return ReceiptEmailEvent{}, false, fmt.Errorf("decode notification: %w", err)
	}
	return event, event.Type == EventReceiptEmailRequested, nil
}
