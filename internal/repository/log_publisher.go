package repository

import (
	"context"

	pkgkafka "RiskPulse/pkg/kafka"
)

// LogPublisher adapts the Kafka producer to the logger's aggregated-log
// sink. Logs carry no key; round-robin partitioning is fine for them.
type LogPublisher struct {
	producer *pkgkafka.Producer
}

// NewLogPublisher creates a Kafka-backed log publisher.
func NewLogPublisher(producer *pkgkafka.Producer) *LogPublisher {
	return &LogPublisher{producer: producer}
}

func (p *LogPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}
