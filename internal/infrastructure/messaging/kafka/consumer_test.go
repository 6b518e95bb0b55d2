package kafka

import (
	"context"
	"io"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

type fakeReader struct {
	messages  []kafkago.Message
	committed []kafkago.Message
	closed    bool
}

func (r *fakeReader) FetchMessage(_ context.Context) (kafkago.Message, error) {
	if len(r.messages) == 0 {
		return kafkago.Message{}, io.EOF
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func TestConsumerRun_CommitsHandledMessages(t *testing.T) {
	reader := &fakeReader{messages: []kafkago.Message{
		{Topic: TopicComplianceAlerts, Key: []byte("spac-atlas"), Value: []byte("a"),
			Headers: []kafkago.Header{{Key: "severity", Value: []byte("CRITICAL")}}},
		{Topic: TopicComplianceAlerts, Key: []byte("spac-borea"), Value: []byte("b")},
	}}
	c := &Consumer{reader: reader, logger: logging.NewNopLogger(), topic: TopicComplianceAlerts}

	var handled []Message
	err := c.Run(context.Background(), func(_ context.Context, msg Message) error {
		handled = append(handled, msg)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, handled, 2)
	assert.Equal(t, "CRITICAL", handled[0].Headers["severity"])
	assert.Len(t, reader.committed, 2)
}

func TestConsumerRun_HandlerFailureLeavesOffsetUncommitted(t *testing.T) {
	reader := &fakeReader{messages: []kafkago.Message{
		{Topic: TopicComplianceAlerts, Key: []byte("spac-atlas"), Value: []byte("a")},
	}}
	c := &Consumer{reader: reader, logger: logging.NewNopLogger(), topic: TopicComplianceAlerts}

	err := c.Run(context.Background(), func(_ context.Context, _ Message) error {
		return errors.NewInternalOp("handler", "boom")
	})
	require.NoError(t, err)
	assert.Empty(t, reader.committed)
}
