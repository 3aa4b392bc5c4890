package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/cyclone-track-service/internal/config"
	"github.com/couchcryptid/cyclone-track-service/internal/domain"
)

// messageWriter is the subset of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes storm snapshots to a Kafka topic, one message per storm.
// It implements tracker.Publisher.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured snapshot topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSnapshotTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishSnapshot writes every storm in the snapshot in a single
// WriteMessages call. Storms hash to partitions by id so each storm's
// history stays ordered.
func (w *Writer) PublishSnapshot(ctx context.Context, snap domain.Snapshot) error {
	if len(snap.Storms) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(snap.Storms))
	for i := range snap.Storms {
		msg, err := serializeToMessage(snap, snap.Storms[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d snapshot messages: %w", len(msgs), err)
	}
	w.logger.Debug("snapshot published", "cycle_id", snap.CycleID, "storms", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals one storm of a snapshot into a Kafka message.
func serializeToMessage(snap domain.Snapshot, storm domain.Storm) (kafkago.Message, error) {
	data, err := json.Marshal(storm)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize storm %s: %w", storm.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(storm.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "cycle_id", Value: []byte(snap.CycleID)},
			{Key: "basin", Value: []byte(snap.Basin)},
			{Key: "fetched_at", Value: []byte(snap.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
