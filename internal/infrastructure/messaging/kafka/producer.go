package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/SPAC-Sentinel/internal/config"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

var ErrProducerClosed = errors.New(errors.CodeMessageQueueError, "producer closed")

// Message is the transport-level envelope handed to the producer.
type Message struct {
	Topic   string
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// writerInterface abstracts kafka.Writer for testing.
type writerInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes messages with hash partitioning on the message key so
// that all events for one entity land on the same partition.
type Producer struct {
	writer writerInterface
	logger logging.Logger
	closed atomic.Bool
	sent   atomic.Int64
	failed atomic.Int64
}

// NewProducer creates a Producer from configuration.
func NewProducer(cfg config.KafkaConfig, log logging.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.NewValidationOp("kafka.producer", "at least one broker is required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = 100
	}
	batchTimeout := cfg.BatchTimeout
	if batchTimeout == 0 {
		batchTimeout = time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 10 * time.Second
	}
	maxAttempts := cfg.ProducerRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		MaxAttempts:  maxAttempts,
		BatchSize:    batchSize,
		BatchTimeout: batchTimeout,
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireAll,
	}

	return &Producer{writer: writer, logger: log}, nil
}

// newProducerWithWriter is the test seam.
func newProducerWithWriter(w writerInterface, log logging.Logger) *Producer {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Producer{writer: w, logger: log}
}

// Publish sends one message.
func (p *Producer) Publish(ctx context.Context, msg Message) error {
	return p.PublishBatch(ctx, []Message{msg})
}

// PublishBatch sends a batch of messages in one writer call.
func (p *Producer) PublishBatch(ctx context.Context, msgs []Message) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	if len(msgs) == 0 {
		return nil
	}
	for _, msg := range msgs {
		if msg.Topic == "" {
			return errors.NewValidationOp("kafka.publish", "topic is required")
		}
		if len(msg.Value) == 0 {
			return errors.NewValidationOp("kafka.publish", "value is required")
		}
	}

	kMsgs := make([]kafka.Message, len(msgs))
	for i, msg := range msgs {
		kMsgs[i] = toKafkaMessage(msg)
	}

	if err := p.writer.WriteMessages(ctx, kMsgs...); err != nil {
		p.failed.Add(int64(len(msgs)))
		return errors.Wrap(err, errors.CodeMessageQueueError, "failed to write messages")
	}

	p.sent.Add(int64(len(msgs)))
	p.logger.Debug("messages published",
		logging.String("topic", msgs[0].Topic),
		logging.Int("count", len(msgs)),
	)
	return nil
}

// Sent returns the number of messages published since construction.
func (p *Producer) Sent() int64 { return p.sent.Load() }

// Failed returns the number of messages that failed to publish.
func (p *Producer) Failed() int64 { return p.failed.Load() }

// Close flushes and closes the underlying writer.  Safe to call twice.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := p.writer.Close()
	p.logger.Info("kafka producer closed", logging.Int64("sent", p.sent.Load()))
	return err
}

func toKafkaMessage(msg Message) kafka.Message {
	headers := make([]kafka.Header, 0, len(msg.Headers))
	for k, v := range msg.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return kafka.Message{
		Topic:   msg.Topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
		Time:    time.Now(),
	}
}
