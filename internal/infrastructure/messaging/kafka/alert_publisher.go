package kafka

import (
	"context"
	"encoding/json"

	"github.com/turtacn/SPAC-Sentinel/internal/application/compliance"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// AlertPublisher publishes deadline alerts onto the compliance alerts topic,
// keyed by entity so each entity's alerts stay ordered.
type AlertPublisher struct {
	producer *Producer
}

// NewAlertPublisher wraps a Producer as a compliance.AlertPublisher.
func NewAlertPublisher(producer *Producer) *AlertPublisher {
	return &AlertPublisher{producer: producer}
}

// PublishAlerts publishes one message per alert in a single batch.
func (p *AlertPublisher) PublishAlerts(ctx context.Context, alerts []compliance.DeadlineAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	msgs := make([]Message, 0, len(alerts))
	for _, alert := range alerts {
		payload, err := json.Marshal(alert)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode alert")
		}
		msgs = append(msgs, Message{
			Topic: TopicComplianceAlerts,
			Key:   []byte(alert.SpacID),
			Value: payload,
			Headers: map[string]string{
				"severity":    string(alert.Severity),
				"filing_type": string(alert.FilingType),
			},
		})
	}
	return p.producer.PublishBatch(ctx, msgs)
}
