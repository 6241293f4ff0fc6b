package audit

import (
	"context"
	"encoding/json"
	"fmt"
)

// RecordPublisher is the transport side of the Kafka sink.
type RecordPublisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// KafkaSink serializes events as JSON keyed by shop so one tenant's
// stream stays ordered within a partition.
type KafkaSink struct {
	producer RecordPublisher
}

func NewKafkaSink(producer RecordPublisher) *KafkaSink {
	return &KafkaSink{producer: producer}
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	return s.producer.Publish(ctx, []byte(event.ShopID.String()), payload)
}
