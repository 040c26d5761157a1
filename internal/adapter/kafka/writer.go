// Package kafka publishes stored claims to a Kafka topic for downstream
// consumers. Publishing is optional: the service runs without it when no
// brokers are configured.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/madhuka-dev/dataclaim-service/internal/config"
	"github.com/madhuka-dev/dataclaim-service/internal/domain"
)

// Writer produces claim events to the configured topic.
// It implements service.ClaimPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the claims topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaClaimsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishClaim serializes and publishes one stored claim.
func (w *Writer) PublishClaim(ctx context.Context, rec domain.ClaimRecord) error {
	msg, err := serializeToMessage(rec)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ClaimRecord into a Kafka message keyed by the
// store-assigned id.
func serializeToMessage(rec domain.ClaimRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize claim: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.ID.Hex()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "selected_gb", Value: []byte(rec.SelectedGB)},
			{Key: "submitted_at", Value: []byte(rec.SubmittedAt.Format(time.RFC3339))},
		},
	}, nil
}
