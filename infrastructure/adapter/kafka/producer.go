package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AuditProducer publishes audit entries that could not be stored with their mutation.
type AuditProducer struct {
	writer  messageWriter
	timeout time.Duration
}

func NewAuditProducer(cfg Config) *AuditProducer {
	return &AuditProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			Transport:    cfg.transport(),
			WriteTimeout: 10 * time.Second,
		},
		timeout: 5 * time.Second,
	}
}

// Publish writes entry keyed by its entity so one record's history stays on one partition.
func (p *AuditProducer) Publish(ctx context.Context, entry *domain.AuditEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(string(entry.EntityType) + ":" + entry.EntityID),
		Value: value,
		Time:  entry.Timestamp,
		Headers: []kafka.Header{
			{Key: "audit-entry-id", Value: []byte(entry.ID)},
		},
	})
}

func (p *AuditProducer) Close() error {
	return p.writer.Close()
}

var _ outbound.AuditFallbackSink = (*AuditProducer)(nil)
