package pkg

import (
	"context"
	"strconv"

	"github.com/segmentio/kafka-go"

	"SafeCampus/internal/config"
)

// EventProducer publishes follow/unfollow events drained from the social
// outbox. Messages are keyed by follower id so one account's events stay
// ordered within a partition.
type EventProducer struct {
	writer *kafka.Writer
}

func NewEventProducer(cfg config.KafkaConfig) *EventProducer {
	return &EventProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *EventProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *EventProducer) Publish(ctx context.Context, followerID uint64, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(followerID, 10)),
		Value: payload,
	})
}
