package kafka

import (
	"context"
	"io"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/SPAC-Sentinel/internal/config"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// Handler processes one consumed message.  A non-nil error leaves the offset
// uncommitted so the message is redelivered.
type Handler func(ctx context.Context, msg Message) error

// readerInterface abstracts kafka.Reader for testing.
type readerInterface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer is a consumer-group reader for one topic.
type Consumer struct {
	reader readerInterface
	logger logging.Logger
	topic  string
}

// NewConsumer creates a consumer-group reader for the given topic.
func NewConsumer(cfg config.KafkaConfig, topic string, log logging.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.NewValidationOp("kafka.consumer", "at least one broker is required")
	}
	if topic == "" {
		return nil, errors.NewValidationOp("kafka.consumer", "topic is required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	startOffset := kafka.LastOffset
	if cfg.AutoOffsetReset == "earliest" {
		startOffset = kafka.FirstOffset
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       topic,
		StartOffset: startOffset,
		MinBytes:    1,
		MaxBytes:    10 * 1024 * 1024,
	})

	return &Consumer{reader: reader, logger: log, topic: topic}, nil
}

// Run consumes until the context is cancelled or the reader is closed.
// Handler failures are logged and the offset stays uncommitted.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	for {
		kMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if err == io.EOF || ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, errors.CodeMessageQueueError, "failed to fetch message")
		}

		msg := Message{
			Topic:   kMsg.Topic,
			Key:     kMsg.Key,
			Value:   kMsg.Value,
			Headers: make(map[string]string, len(kMsg.Headers)),
		}
		for _, h := range kMsg.Headers {
			msg.Headers[h.Key] = string(h.Value)
		}

		if err := handler(ctx, msg); err != nil {
			c.logger.Error("message handler failed",
				logging.String("topic", c.topic),
				logging.String("key", string(kMsg.Key)),
				logging.Err(err),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, kMsg); err != nil {
			c.logger.Error("offset commit failed",
				logging.String("topic", c.topic), logging.Err(err))
		}
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
