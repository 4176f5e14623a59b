package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/domain"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const (
	minBackoff = 500 * time.Millisecond
	maxBackoff = 30 * time.Second
)

// AuditConsumer feeds fallback entries to the relay. Offsets are committed only
// after the entry is stored, or when the message can never be stored.
type AuditConsumer struct {
	reader messageReader
	relay  inbound.AuditRelayUseCase
	logger logger.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewAuditConsumer(cfg Config, relay inbound.AuditRelayUseCase, log logger.Logger) *AuditConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6, //10MB
		Dialer:   cfg.dialer(),
	})
	return newAuditConsumer(reader, relay, log)
}

func newAuditConsumer(reader messageReader, relay inbound.AuditRelayUseCase, log logger.Logger) *AuditConsumer {
	return &AuditConsumer{
		reader: reader,
		relay:  relay,
		logger: log,
		sleep:  sleepContext,
	}
}

// Run consumes until ctx is cancelled.
func (c *AuditConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error(ctx, "Audit fallback fetch failed", err, nil)
			if err := c.sleep(ctx, minBackoff); err != nil {
				return nil
			}
			continue
		}

		if err := c.handle(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (c *AuditConsumer) handle(ctx context.Context, msg kafka.Message) error {
	fields := map[string]interface{}{
		"partition": msg.Partition,
		"offset":    msg.Offset,
	}

	var entry domain.AuditEntry
	if err := json.Unmarshal(msg.Value, &entry); err != nil {
		c.logger.Error(ctx, "Dropping undecodable audit message", err, fields)
		return c.reader.CommitMessages(ctx, msg)
	}
	fields["audit_entry_id"] = entry.ID

	backoff := minBackoff
	for {
		err := c.relay.Relay(ctx, &entry)
		if err == nil {
			return c.reader.CommitMessages(ctx, msg)
		}
		if errors.Is(err, domainerr.ErrValidation) {
			c.logger.Error(ctx, "Dropping invalid audit entry", err, fields)
			return c.reader.CommitMessages(ctx, msg)
		}

		c.logger.Warn(ctx, "Audit relay failed, retrying", mergeFields(fields, map[string]interface{}{
			"error":   err.Error(),
			"backoff": backoff.String(),
		}))
		if err := c.sleep(ctx, backoff); err != nil {
			return err
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (c *AuditConsumer) Close() error {
	return c.reader.Close()
}

func mergeFields(a, b map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
