// internal/publish/kafka.go
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/tamzrod/parkwatch/internal/poller"
)

type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConfig selects the brokers and topic for cycle events.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Kafka publishes one message per cycle, keyed by zone id.
type Kafka struct {
	topic  string
	writer kafkaMessageWriter
	log    *slog.Logger
}

// NewKafka builds a publisher backed by a kafka.Writer.
func NewKafka(cfg KafkaConfig, log *slog.Logger) (*Kafka, error) {
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("kafka: topic must not be empty")
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: false,
	}
	return newKafkaWithWriter(cfg.Topic, w, log), nil
}

func newKafkaWithWriter(topic string, w kafkaMessageWriter, log *slog.Logger) *Kafka {
	if log == nil {
		log = slog.Default()
	}
	return &Kafka{
		topic:  topic,
		writer: w,
		log:    log.With(slog.String("component", "kafka_publisher")),
	}
}

func (k *Kafka) Name() string { return "kafka" }

// Publish implements poller.Sink.
func (k *Kafka) Publish(ctx context.Context, r poller.Report) error {
	value, err := encode(r)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(r.Zone.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "cycle-id", Value: []byte(r.ID)},
			{Key: "trigger", Value: []byte(r.Trigger)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write to %s: %w", k.topic, err)
	}
	k.log.Debug("report published", slog.String("topic", k.topic), slog.String("cycle", r.ID))
	return nil
}

// Close flushes and releases the writer.
func (k *Kafka) Close() error {
	return k.writer.Close()
}
