package analytics

import (
	"context"

	"github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/kafka"
)

type publisher interface {
	Publish(ctx context.Context, event kafka.Event) error
}

// KafkaSink publishes run events keyed by URL so that runs of the same book
// land on one partition.
type KafkaSink struct {
	producer publisher
}

func NewKafkaSink(producer *kafka.Producer) *KafkaSink {
	return &KafkaSink{producer: producer}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Record(ctx context.Context, ev RunEvent) error {
	return s.producer.Publish(ctx, kafka.Event{Key: ev.URL, Value: ev})
}
