package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"meteorsim/internal/impact"
)

// KafkaWriter publishes results to a Kafka topic. Messages are keyed by run
// id so per-run ordering survives partitioning.
type KafkaWriter struct {
	writer *kafkago.Writer
}

// NewKafkaWriter creates a Kafka-backed result writer.
func NewKafkaWriter(brokers []string, topic string) *KafkaWriter {
	return &KafkaWriter{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireAll,
			BatchTimeout: 100 * time.Millisecond,
		},
	}
}

// WriteResult publishes a single result.
func (w *KafkaWriter) WriteResult(r impact.SimulationResult) error {
	return w.WriteResults([]impact.SimulationResult{r})
}

// WriteResults publishes multiple results in one produce call.
func (w *KafkaWriter) WriteResults(rows []impact.SimulationResult) error {
	if len(rows) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, 0, len(rows))
	for _, r := range rows {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal result %s: %w", r.ID, err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(r.ID),
			Value: payload,
			Headers: []kafkago.Header{
				{Key: "energy_megatons", Value: []byte(strconv.FormatFloat(r.EnergyMegatons, 'g', -1, 64))},
			},
			Time: r.Timestamp,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Printf("[KafkaWriter] WriteMessages failed: %v", err)
		return err
	}
	return nil
}

// Close flushes and closes the underlying Kafka writer.
func (w *KafkaWriter) Close() error {
	return w.writer.Close()
}
