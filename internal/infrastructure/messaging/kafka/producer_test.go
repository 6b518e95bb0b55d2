package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SPAC-Sentinel/internal/application/compliance"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

type fakeWriter struct {
	written []kafkago.Message
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducerPublish(t *testing.T) {
	writer := &fakeWriter{}
	p := newProducerWithWriter(writer, nil)

	err := p.Publish(context.Background(), Message{
		Topic: TopicComplianceAlerts,
		Key:   []byte("spac-atlas"),
		Value: []byte(`{"severity":"CRITICAL"}`),
		Headers: map[string]string{
			"severity": "CRITICAL",
		},
	})
	require.NoError(t, err)
	require.Len(t, writer.written, 1)

	msg := writer.written[0]
	assert.Equal(t, TopicComplianceAlerts, msg.Topic)
	assert.Equal(t, []byte("spac-atlas"), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "severity", msg.Headers[0].Key)
	assert.EqualValues(t, 1, p.Sent())
}

func TestProducerPublish_Validation(t *testing.T) {
	p := newProducerWithWriter(&fakeWriter{}, nil)

	err := p.Publish(context.Background(), Message{Value: []byte("x")})
	assert.True(t, errors.IsValidation(err), "missing topic is rejected")

	err = p.Publish(context.Background(), Message{Topic: TopicComplianceAlerts})
	assert.True(t, errors.IsValidation(err), "empty value is rejected")
}

func TestProducerPublish_AfterClose(t *testing.T) {
	writer := &fakeWriter{}
	p := newProducerWithWriter(writer, nil)

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
	require.NoError(t, p.Close(), "double close is a no-op")

	err := p.Publish(context.Background(), Message{Topic: "t", Value: []byte("x")})
	assert.ErrorIs(t, err, ErrProducerClosed)
}

func TestProducerPublishBatch_WriteFailureCountsAll(t *testing.T) {
	writer := &fakeWriter{err: errors.NewInternalOp("kafka.write", "broker unreachable")}
	p := newProducerWithWriter(writer, nil)

	err := p.PublishBatch(context.Background(), []Message{
		{Topic: "t", Value: []byte("a")},
		{Topic: "t", Value: []byte("b")},
	})
	require.Error(t, err)
	assert.EqualValues(t, 2, p.Failed())
	assert.EqualValues(t, 0, p.Sent())
}

func TestAlertPublisher_EncodesAndKeysByEntity(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewAlertPublisher(newProducerWithWriter(writer, nil))

	deadline := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	alerts := []compliance.DeadlineAlert{
		{
			ID:         "spac-atlas-10-K",
			SpacID:     "spac-atlas",
			SpacName:   "Atlas Acquisition Corp",
			FilingType: filing.Form10K,
			Severity:   compliance.SeverityCritical,
			Message:    "URGENT: Atlas Acquisition Corp - Annual Report due in 2 business days",
			Deadline:   deadline,
		},
		{
			ID:       "spac-borea-10-Q",
			SpacID:   "spac-borea",
			Severity: compliance.SeverityWarning,
			Deadline: deadline,
		},
	}

	require.NoError(t, publisher.PublishAlerts(context.Background(), alerts))
	require.Len(t, writer.written, 2)

	first := writer.written[0]
	assert.Equal(t, TopicComplianceAlerts, first.Topic)
	assert.Equal(t, []byte("spac-atlas"), first.Key)

	var decoded compliance.DeadlineAlert
	require.NoError(t, json.Unmarshal(first.Value, &decoded))
	assert.Equal(t, compliance.SeverityCritical, decoded.Severity)
	assert.Equal(t, filing.Form10K, decoded.FilingType)
	assert.True(t, decoded.Deadline.Equal(deadline))

	require.NoError(t, publisher.PublishAlerts(context.Background(), nil), "empty batch is a no-op")
	assert.Len(t, writer.written, 2)
}
