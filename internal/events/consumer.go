package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/yourorg/stock-tracker/internal/model"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// welcomeSender runs the onboarding pipeline for a freshly registered user
type welcomeSender interface {
	SendWelcome(ctx context.Context, event model.UserCreatedEvent) error
}

// Consumer reads user-created events and drives the welcome-email pipeline
type Consumer struct {
	reader  *kafka.Reader
	welcome welcomeSender
	logger  *zap.Logger
}

// NewConsumer creates a consumer bound to the user events topic
func NewConsumer(brokers []string, topic, groupID string, welcome welcomeSender, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})

	return &Consumer{
		reader:  reader,
		welcome: welcome,
		logger:  logger,
	}
}

// Run consumes events until the context is canceled. Malformed events and
// pipeline failures are logged and skipped; the loop only stops on context
// cancellation.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			c.logger.Error("failed to read message", zap.Error(err))
			continue
		}

		var event model.UserCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("failed to decode user created event",
				zap.String("key", string(msg.Key)),
				zap.Error(err))
			continue
		}

		if err := c.welcome.SendWelcome(ctx, event); err != nil {
			c.logger.Error("welcome pipeline failed",
				zap.String("email", event.Email),
				zap.Error(err))
		}
	}
}

// Close closes the underlying reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}
